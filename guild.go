package main

// GuildInfo is a player's guild membership view.
type GuildInfo struct {
	HasGuild      bool    `json:"has_guild"`
	GuildID       int64   `json:"guild_id,omitempty"`
	Name          string  `json:"name,omitempty"`
	Level         int     `json:"level,omitempty"`
	Exp           int64   `json:"exp,omitempty"`
	Gold          float64 `json:"gold,omitempty"`
	GoldFormatted string  `json:"gold_formatted,omitempty"`
	MasterName    string  `json:"master_name,omitempty"`
	MemberCount   int     `json:"member_count,omitempty"`
	Win           int     `json:"win"`
	Draw          int     `json:"draw"`
	Loss          int     `json:"loss"`
	LadderPoint   int64   `json:"ladder_point"`
	PlayerGrade   int     `json:"player_grade,omitempty"`
	IsGeneral     bool    `json:"is_general"`
}

// GuildMember is one roster entry.
type GuildMember struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Job       string `json:"job"`
	Grade     int    `json:"grade"`
	GradeName string `json:"grade_name"`
	IsGeneral bool   `json:"is_general"`
}

var guildGradeNames = map[int]string{
	1: "Lider",
	2: "Yardımcı",
	3: "Subay",
	4: "Komutan",
	5: "Üye",
}

func guildGradeName(grade int) string {
	if name, ok := guildGradeNames[grade]; ok {
		return name
	}
	return "Üye"
}

// GuildService reads guild membership and rosters.
type GuildService struct {
	reg *Registry
}

func NewGuildService(reg *Registry) *GuildService {
	return &GuildService{reg: reg}
}

// ForPlayer returns the guild a character belongs to, if any.
func (s *GuildService) ForPlayer(playerID int64) (GuildInfo, error) {
	membership, err := s.reg.SelectOne("player",
		"SELECT guild_id, grade, is_general FROM guild_member WHERE pid = ?", playerID)
	if err != nil {
		return GuildInfo{}, err
	}
	if membership == nil {
		return GuildInfo{HasGuild: false}, nil
	}

	guild, err := s.reg.SelectOne("player",
		"SELECT * FROM guild WHERE id = ?", valueInt(membership["guild_id"]))
	if err != nil {
		return GuildInfo{}, err
	}
	if guild == nil {
		return GuildInfo{HasGuild: false}, nil
	}

	masterName := "Unknown"
	if master, err := s.reg.SelectOne("player",
		"SELECT name FROM player WHERE id = ?", valueInt(guild["master"])); err == nil && master != nil {
		masterName = valueString(master["name"])
	}

	memberCount := 0
	if row, err := s.reg.SelectOne("player",
		"SELECT COUNT(*) AS count FROM guild_member WHERE guild_id = ?", valueInt(guild["id"])); err == nil && row != nil {
		memberCount = int(valueInt(row["count"]))
	}

	gold := valueFloat(guild["gold"])
	return GuildInfo{
		HasGuild:      true,
		GuildID:       valueInt(guild["id"]),
		Name:          valueString(guild["name"]),
		Level:         int(valueInt(guild["level"])),
		Exp:           valueInt(guild["exp"]),
		Gold:          gold,
		GoldFormatted: formatYang(gold),
		MasterName:    masterName,
		MemberCount:   memberCount,
		Win:           int(valueInt(guild["win"])),
		Draw:          int(valueInt(guild["draw"])),
		Loss:          int(valueInt(guild["loss"])),
		LadderPoint:   valueInt(guild["ladder_point"]),
		PlayerGrade:   int(valueInt(membership["grade"])),
		IsGeneral:     valueInt(membership["is_general"]) != 0,
	}, nil
}

// Members lists a guild's roster ordered by grade, then level.
func (s *GuildService) Members(guildID int64) ([]GuildMember, error) {
	rows, err := s.reg.Select("player", `
		SELECT gm.grade, gm.is_general, p.name, p.level, p.job
		FROM guild_member gm
		JOIN player p ON gm.pid = p.id
		WHERE gm.guild_id = ?
		ORDER BY gm.grade ASC, p.level DESC`, guildID)
	if err != nil {
		return nil, err
	}

	members := make([]GuildMember, 0, len(rows))
	for _, row := range rows {
		grade := int(valueInt(row["grade"]))
		members = append(members, GuildMember{
			Name:      valueString(row["name"]),
			Level:     int(valueInt(row["level"])),
			Job:       jobName(int(valueInt(row["job"]))),
			Grade:     grade,
			GradeName: guildGradeName(grade),
			IsGeneral: valueInt(row["is_general"]) != 0,
		})
	}
	return members, nil
}
