package main

// Character is the normalized, display-ready view of one player row.
type Character struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Level              int     `json:"level"`
	Exp                float64 `json:"exp"`
	ExpPercent         float64 `json:"exp_percent"`
	ExpNeeded          int64   `json:"exp_needed"`
	Gold               float64 `json:"gold"`
	GoldFormatted      string  `json:"gold_formatted"`
	Won                int64   `json:"won"`
	Job                int     `json:"job"`
	JobName            string  `json:"job_name"`
	Empire             int     `json:"empire"`
	EmpireName         string  `json:"empire_name"`
	Alignment          int     `json:"alignment"`
	AlignmentRank      string  `json:"alignment_rank"`
	HP                 int64   `json:"hp"`
	MP                 int64   `json:"mp"`
	ST                 int64   `json:"st"`
	HT                 int64   `json:"ht"`
	DX                 int64   `json:"dx"`
	IQ                 int64   `json:"iq"`
	Playtime           int     `json:"playtime"`
	PlaytimeFormatted  string  `json:"playtime_formatted"`
	LastPlay           string  `json:"last_play,omitempty"`
	MapIndex           int64   `json:"map_index"`
	X                  int64   `json:"x"`
	Y                  int64   `json:"y"`
	ChampionLevel      int64   `json:"champion_level"`
	ChampionExp        float64 `json:"champion_exp"`
}

// AccountGold sums liquid wealth across an account's characters.
type AccountGold struct {
	Gold          float64 `json:"gold"`
	GoldFormatted string  `json:"gold_formatted"`
	Won           int64   `json:"won"`
	Combined      string  `json:"combined"`
}

// CharacterService reads and formats character rows. It selects * because the
// player table's optional columns (cheque, champion levels) vary per
// deployment.
type CharacterService struct {
	reg *Registry
}

func NewCharacterService(reg *Registry) *CharacterService {
	return &CharacterService{reg: reg}
}

// ByAccount lists an account's characters, skipping deleted ones (empty name).
func (s *CharacterService) ByAccount(accountID int64) ([]Character, error) {
	rows, err := s.reg.Select("player",
		"SELECT * FROM player WHERE account_id = ? AND name != ''", accountID)
	if err != nil {
		return nil, err
	}
	characters := make([]Character, 0, len(rows))
	for _, row := range rows {
		characters = append(characters, formatCharacter(row))
	}
	return characters, nil
}

// ByID returns one character, nil when it does not exist or belongs to a
// different account. The ownership check keeps one player from reading
// another's quest state through the panel.
func (s *CharacterService) ByID(characterID, accountID int64) (*Character, error) {
	row, err := s.reg.SelectOne("player",
		"SELECT * FROM player WHERE id = ? AND account_id = ?", characterID, accountID)
	if err != nil || row == nil {
		return nil, err
	}
	c := formatCharacter(row)
	return &c, nil
}

// Main returns the account's highest-level character.
func (s *CharacterService) Main(accountID int64) (*Character, error) {
	row, err := s.reg.SelectOne("player",
		"SELECT * FROM player WHERE account_id = ? AND name != '' ORDER BY level DESC LIMIT 1",
		accountID)
	if err != nil || row == nil {
		return nil, err
	}
	c := formatCharacter(row)
	return &c, nil
}

// TotalGold sums gold and won across the account.
func (s *CharacterService) TotalGold(accountID int64) (AccountGold, error) {
	row, err := s.reg.SelectOne("player",
		"SELECT SUM(gold) AS total_gold, SUM(COALESCE(cheque, 0)) AS total_won FROM player WHERE account_id = ?",
		accountID)
	if err != nil {
		return AccountGold{}, err
	}

	var gold float64
	var won int64
	if row != nil {
		gold = valueFloat(row["total_gold"])
		won = valueInt(row["total_won"])
	}

	result := AccountGold{
		Gold:          gold,
		GoldFormatted: formatYang(gold),
		Won:           won,
		Combined:      formatYang(gold),
	}
	if won > 0 {
		result.Combined = yangPrinter.Sprintf("%d Won | ", won) + formatYang(gold)
	}
	return result, nil
}

func formatCharacter(row map[string]interface{}) Character {
	level := int(valueInt(row["level"]))
	exp := valueFloat(row["exp"])
	gold := valueFloat(row["gold"])
	playtime := int(valueInt(row["playtime"]))
	alignment := int(valueInt(row["alignment"]))
	job := int(valueInt(row["job"]))
	empire := int(valueInt(row["empire"]))

	return Character{
		ID:                valueInt(row["id"]),
		Name:              valueString(row["name"]),
		Level:             level,
		Exp:               exp,
		ExpPercent:        calculateExpPercent(level, exp),
		ExpNeeded:         expNeeded(level),
		Gold:              gold,
		GoldFormatted:     formatYang(gold),
		Won:               valueInt(firstValue(row, "cheque", "won")),
		Job:               job,
		JobName:           jobName(job),
		Empire:            empire,
		EmpireName:        empireName(empire),
		Alignment:         alignment,
		AlignmentRank:     alignmentRank(alignment),
		HP:                valueInt(row["hp"]),
		MP:                valueInt(firstValue(row, "sp", "mp")),
		ST:                valueInt(row["st"]),
		HT:                valueInt(row["ht"]),
		DX:                valueInt(row["dx"]),
		IQ:                valueInt(row["iq"]),
		Playtime:          playtime,
		PlaytimeFormatted: formatPlaytime(playtime),
		LastPlay:          valueString(row["last_play"]),
		MapIndex:          valueInt(row["map_index"]),
		X:                 valueInt(row["x"]),
		Y:                 valueInt(row["y"]),
		ChampionLevel:     valueInt(row["myht"]),
		ChampionExp:       valueFloat(row["myht_exp"]),
	}
}
