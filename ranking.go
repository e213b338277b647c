package main

// RankingEntry is one row of a ranking table. Fields not relevant to the
// requested ranking type stay at their zero value and are omitted.
type RankingEntry struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Level         int     `json:"level"`
	Job           string  `json:"job"`
	Empire        string  `json:"empire"`
	Gold          float64 `json:"gold,omitempty"`
	GoldFormatted string  `json:"gold_formatted,omitempty"`
	Alignment     int     `json:"alignment,omitempty"`
	AlignmentRank string  `json:"alignment_rank,omitempty"`
}

const rankingLimit = 100

// RankingService serves the server-wide top lists.
type RankingService struct {
	reg *Registry
}

func NewRankingService(reg *Registry) *RankingService {
	return &RankingService{reg: reg}
}

// TopLevel ranks players by level, experience breaking ties.
func (s *RankingService) TopLevel() ([]RankingEntry, error) {
	rows, err := s.reg.Select("player", `
		SELECT name, level, exp, job, empire FROM player
		WHERE name != '' AND level > 0
		ORDER BY level DESC, exp DESC
		LIMIT ?`, rankingLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, RankingEntry{
			Rank:   i + 1,
			Name:   valueString(row["name"]),
			Level:  int(valueInt(row["level"])),
			Job:    jobName(int(valueInt(row["job"]))),
			Empire: empireName(int(valueInt(row["empire"]))),
		})
	}
	return entries, nil
}

// TopGold ranks players by carried gold.
func (s *RankingService) TopGold() ([]RankingEntry, error) {
	rows, err := s.reg.Select("player", `
		SELECT name, level, gold, job, empire FROM player
		WHERE name != ''
		ORDER BY gold DESC
		LIMIT ?`, rankingLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(rows))
	for i, row := range rows {
		gold := valueFloat(row["gold"])
		entries = append(entries, RankingEntry{
			Rank:          i + 1,
			Name:          valueString(row["name"]),
			Level:         int(valueInt(row["level"])),
			Gold:          gold,
			GoldFormatted: formatYang(gold),
			Job:           jobName(int(valueInt(row["job"]))),
			Empire:        empireName(int(valueInt(row["empire"]))),
		})
	}
	return entries, nil
}

// TopAlignment ranks heroes by alignment.
func (s *RankingService) TopAlignment() ([]RankingEntry, error) {
	rows, err := s.reg.Select("player", `
		SELECT name, level, alignment, job, empire FROM player
		WHERE name != ''
		ORDER BY alignment DESC
		LIMIT ?`, rankingLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(rows))
	for i, row := range rows {
		alignment := int(valueInt(row["alignment"]))
		entries = append(entries, RankingEntry{
			Rank:          i + 1,
			Name:          valueString(row["name"]),
			Level:         int(valueInt(row["level"])),
			Alignment:     alignment,
			AlignmentRank: alignmentRank(alignment),
			Job:           jobName(int(valueInt(row["job"]))),
			Empire:        empireName(int(valueInt(row["empire"]))),
		})
	}
	return entries, nil
}
