package main

import (
	"math"
	"time"
)

// PlaytimeStats sums an account's logged game time.
type PlaytimeStats struct {
	TotalSeconds int64  `json:"total_seconds"`
	TotalHours   int64  `json:"total_hours"`
	TotalDays    int64  `json:"total_days"`
	Formatted    string `json:"formatted"`
}

// LevelStep is one entry of a character's level history.
type LevelStep struct {
	Level int    `json:"level"`
	Date  string `json:"date"`
}

// GoldStats aggregates a character's gold log.
type GoldStats struct {
	TotalEarned          float64 `json:"total_earned"`
	TotalEarnedFormatted string  `json:"total_earned_formatted"`
	TotalSpent           float64 `json:"total_spent"`
	TotalSpentFormatted  string  `json:"total_spent_formatted"`
	Net                  float64 `json:"net"`
	NetFormatted         string  `json:"net_formatted"`
}

// RefineStats aggregates refinement attempts.
type RefineStats struct {
	TotalAttempts int     `json:"total_attempts"`
	Successful    int     `json:"successful"`
	Failed        int     `json:"failed"`
	SuccessRate   float64 `json:"success_rate"`
}

// FishingStats counts logged catches.
type FishingStats struct {
	TotalFishCaught int64 `json:"total_fish_caught"`
}

// StatsService reads the account and log databases for historical numbers.
type StatsService struct {
	reg *Registry
}

func NewStatsService(reg *Registry) *StatsService {
	return &StatsService{reg: reg}
}

// TotalPlaytime sums the GameTime ledger for an account.
func (s *StatsService) TotalPlaytime(accountID int64) (PlaytimeStats, error) {
	row, err := s.reg.SelectOne("account",
		"SELECT SUM(LEN) AS total FROM GameTime WHERE account_id = ?", accountID)
	if err != nil {
		return PlaytimeStats{}, err
	}

	var total int64
	if row != nil {
		total = valueInt(row["total"])
	}
	hours := total / 3600
	days := hours / 24
	return PlaytimeStats{
		TotalSeconds: total,
		TotalHours:   hours,
		TotalDays:    days,
		Formatted:    yangPrinter.Sprintf("%d Gün, %d Saat", days, hours%24),
	}, nil
}

// LevelProgression returns a character's recent level-ups, oldest first.
func (s *StatsService) LevelProgression(playerID int64, limit int) ([]LevelStep, error) {
	rows, err := s.reg.Select("log",
		"SELECT level, time FROM levellog WHERE pid = ? ORDER BY time DESC LIMIT ?",
		playerID, limit)
	if err != nil {
		return nil, err
	}

	steps := make([]LevelStep, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		date := valueString(row["time"])
		if t, err := time.Parse("2006-01-02 15:04:05", date); err == nil {
			date = t.Format("2006-01-02 15:04")
		}
		steps = append(steps, LevelStep{
			Level: int(valueInt(row["level"])),
			Date:  date,
		})
	}
	return steps, nil
}

// GoldStatistics splits the gold log into earned and spent totals.
func (s *StatsService) GoldStatistics(playerID int64) (GoldStats, error) {
	earned, err := s.reg.SelectOne("log",
		"SELECT SUM(gold) AS total FROM goldlog WHERE pid = ? AND gold > 0", playerID)
	if err != nil {
		return GoldStats{}, err
	}
	spent, err := s.reg.SelectOne("log",
		"SELECT SUM(ABS(gold)) AS total FROM goldlog WHERE pid = ? AND gold < 0", playerID)
	if err != nil {
		return GoldStats{}, err
	}

	var totalEarned, totalSpent float64
	if earned != nil {
		totalEarned = valueFloat(earned["total"])
	}
	if spent != nil {
		totalSpent = valueFloat(spent["total"])
	}
	return GoldStats{
		TotalEarned:          totalEarned,
		TotalEarnedFormatted: formatYang(totalEarned),
		TotalSpent:           totalSpent,
		TotalSpentFormatted:  formatYang(totalSpent),
		Net:                  totalEarned - totalSpent,
		NetFormatted:         formatYang(totalEarned - totalSpent),
	}, nil
}

// RefineStatistics samples up to 1000 refine attempts and derives a success
// rate.
func (s *StatsService) RefineStatistics(playerID int64) (RefineStats, error) {
	rows, err := s.reg.Select("log",
		"SELECT result FROM refinelog WHERE pid = ? LIMIT 1000", playerID)
	if err != nil {
		return RefineStats{}, err
	}

	total := len(rows)
	success := 0
	for _, row := range rows {
		if valueInt(row["result"]) == 1 {
			success++
		}
	}

	stats := RefineStats{
		TotalAttempts: total,
		Successful:    success,
		Failed:        total - success,
	}
	if total > 0 {
		stats.SuccessRate = math.Round(float64(success)/float64(total)*100*100) / 100
	}
	return stats, nil
}

// FishingStatistics counts a character's logged catches.
func (s *StatsService) FishingStatistics(playerID int64) (FishingStats, error) {
	row, err := s.reg.SelectOne("log",
		"SELECT COUNT(*) AS total FROM fish_log WHERE pid = ?", playerID)
	if err != nil {
		return FishingStats{}, err
	}

	var total int64
	if row != nil {
		total = valueInt(row["total"])
	}
	return FishingStats{TotalFishCaught: total}, nil
}
