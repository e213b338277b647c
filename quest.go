package main

import (
	"fmt"
	"strings"
	"time"
)

// FlagRecord is one row of the player.quest table: a free-form name and an
// integer value. The naming only loosely follows conventions that vary by
// deployment author.
type FlagRecord struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type flagRole int

const (
	roleDuration flagRole = iota
	roleCounter
	roleStage
)

// roleTokens maps a role to the case-insensitive substrings that mark a flag
// as playing that role. Adding a deployment's naming convention is a data
// change here, not a code change.
type roleTokens map[flagRole][]string

var biologistTokens = roleTokens{
	roleDuration: {"duration", "wait", "sure", "cooldown"},
	roleCounter:  {"count", "miktar", "deliver"},
	roleStage:    {"level", "stage", "seviye"},
}

var roleOrder = []flagRole{roleDuration, roleCounter, roleStage}

// classifyFlags sorts a bag of flags into roles. Each flag lands in the first
// role whose token list matches it; when several flags match the same role the
// last one in result order wins. The upstream deployments this reads from
// behave that way and parity matters more than a tie-break rule. Flags that
// match no role are ignored.
func classifyFlags(flags []FlagRecord, tokens roleTokens) map[flagRole]int64 {
	values := map[flagRole]int64{}
	for _, flag := range flags {
		name := strings.ToLower(flag.Name)
	roles:
		for _, role := range roleOrder {
			for _, sub := range tokens[role] {
				if strings.Contains(name, sub) {
					values[role] = flag.Value
					break roles
				}
			}
		}
	}
	return values
}

// Biologist delivery stages, keyed by stage level.
var biologistStages = map[int64]string{
	1: "Ork Dişi (Lv.30)",
	2: "Çoban Köpek Dişi (Lv.40)",
	3: "Kurt Dişi (Lv.50)",
	4: "Ayı Pençesi (Lv.60)",
	5: "Yabani Domuz Dişi (Lv.70)",
	6: "Düşmüş Yılan Kabuğu (Lv.80)",
	7: "Kertenkele Kuyruğu (Lv.85)",
	8: "Şeytan Boynuzu (Lv.90)",
}

func biologistStageName(level int64) string {
	if name, ok := biologistStages[level]; ok {
		return name
	}
	return fmt.Sprintf("Aşama %d", level)
}

// BiologistStatus is the normalized view of the biologist delivery quest.
type BiologistStatus struct {
	Enabled            bool   `json:"enabled"`
	Level              int64  `json:"level,omitempty"`
	StageName          string `json:"stage_name,omitempty"`
	DeliveredToday     int64  `json:"delivered_today"`
	CanDeliver         bool   `json:"can_deliver"`
	RemainingSeconds   int64  `json:"remaining_seconds"`
	RemainingFormatted string `json:"remaining_formatted,omitempty"`
	NextDelivery       string `json:"next_delivery,omitempty"`
}

type dungeonDef struct {
	Key      string
	Name     string
	Cooldown int64 // seconds; 86400 means calendar-day reset, not rolling
}

// Known dungeons and their reset policies. Daily dungeons (cooldown 86400)
// reset at midnight; everything else uses a rolling window from last entry.
var dungeonCatalog = []dungeonDef{
	{Key: "demon_tower", Name: "Şeytan Kulesi", Cooldown: 3600},
	{Key: "spider_dungeon", Name: "Örümcek Zindanı", Cooldown: 7200},
	{Key: "azrael", Name: "Azrael Mabedi", Cooldown: 86400},
	{Key: "meley", Name: "Meley Zindanı", Cooldown: 86400},
	{Key: "razador", Name: "Razador", Cooldown: 604800},
	{Key: "jotun", Name: "Jotun Thrym", Cooldown: 604800},
}

// DungeonStatus is the normalized per-dungeon cooldown view.
type DungeonStatus struct {
	Key                string `json:"key"`
	Name               string `json:"name"`
	Available          bool   `json:"available"`
	Status             string `json:"status"`
	RemainingSeconds   int64  `json:"remaining_seconds"`
	RemainingFormatted string `json:"remaining_formatted"`
	LastEntry          string `json:"last_entry,omitempty"`
}

// DailyQuestStatus is one tracked daily quest.
type DailyQuestStatus struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Status    string `json:"status"`
}

// QuestService interprets quest flags into typed domain facts. Nothing it
// produces is cached; flags are read fresh on every request.
type QuestService struct {
	reg *Registry
	now func() time.Time
}

func NewQuestService(reg *Registry) *QuestService {
	return &QuestService{reg: reg, now: time.Now}
}

// Flags returns every quest flag for a character.
func (s *QuestService) Flags(playerID int64) ([]FlagRecord, error) {
	return s.flagsWhere("dwPID = ?", playerID)
}

// Flag returns one flag's value, or nil when the flag is absent.
func (s *QuestService) Flag(playerID int64, name string) (*int64, error) {
	row, err := s.reg.SelectOne("player",
		"SELECT lValue FROM quest WHERE dwPID = ? AND szName = ?",
		playerID, name)
	if err != nil || row == nil {
		return nil, err
	}
	value := valueInt(row["lValue"])
	return &value, nil
}

func (s *QuestService) flagsWhere(where string, args ...interface{}) ([]FlagRecord, error) {
	rows, err := s.reg.Select("player",
		"SELECT szName, lValue FROM quest WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	flags := make([]FlagRecord, 0, len(rows))
	for _, row := range rows {
		flags = append(flags, FlagRecord{
			Name:  valueString(row["szName"]),
			Value: valueInt(row["lValue"]),
		})
	}
	return flags, nil
}

// BiologistStatus reads the biologist flags and derives delivery state.
// Zero matching flags means the feature is absent, which is distinct from
// "can deliver now".
func (s *QuestService) BiologistStatus(playerID int64) (BiologistStatus, error) {
	flags, err := s.flagsWhere("dwPID = ? AND szName LIKE '%biolog%'", playerID)
	if err != nil {
		return BiologistStatus{}, err
	}
	return interpretBiologist(flags, s.now()), nil
}

func interpretBiologist(flags []FlagRecord, now time.Time) BiologistStatus {
	if len(flags) == 0 {
		return BiologistStatus{Enabled: false}
	}

	values := classifyFlags(flags, biologistTokens)

	level := int64(1)
	if v, ok := values[roleStage]; ok {
		level = v
	}

	status := BiologistStatus{
		Enabled:        true,
		Level:          level,
		StageName:      biologistStageName(level),
		DeliveredToday: values[roleCounter],
		CanDeliver:     true,
	}

	if duration, ok := values[roleDuration]; ok {
		if duration > now.Unix() {
			status.CanDeliver = false
			status.RemainingSeconds = duration - now.Unix()
		}
		status.NextDelivery = time.Unix(duration, 0).Format("2006-01-02 15:04:05")
	}
	status.RemainingFormatted = formatCooldown(status.RemainingSeconds)
	return status
}

// DungeonCooldowns derives availability for every known dungeon from the
// character's entry flags.
func (s *QuestService) DungeonCooldowns(playerID int64) ([]DungeonStatus, error) {
	flags, err := s.flagsWhere(
		"dwPID = ? AND (szName LIKE '%dungeon%' OR szName LIKE '%zindan%' OR szName LIKE '%last_entry%')",
		playerID)
	if err != nil {
		return nil, err
	}
	return interpretDungeons(flags, s.now()), nil
}

func interpretDungeons(flags []FlagRecord, now time.Time) []DungeonStatus {
	statuses := make([]DungeonStatus, 0, len(dungeonCatalog))
	for _, def := range dungeonCatalog {
		var lastEntry int64
		found := false
		for _, flag := range flags {
			if strings.Contains(strings.ToLower(flag.Name), def.Key) {
				lastEntry = flag.Value
				found = true
			}
		}

		available, remaining := dungeonAvailability(def, lastEntry, found, now)

		status := DungeonStatus{
			Key:                def.Key,
			Name:               def.Name,
			Available:          available,
			RemainingSeconds:   remaining,
			RemainingFormatted: formatCooldown(remaining),
		}
		if available {
			status.Status = "✅ Müsait"
		} else {
			status.Status = "❌ Tamamlandı"
		}
		if found {
			status.LastEntry = time.Unix(lastEntry, 0).Format("2006-01-02 15:04:05")
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// dungeonAvailability applies the dungeon's reset policy. Daily dungeons
// reset at local midnight: an entry stamped yesterday 23:50 is available
// again at 00:00 even though less than an hour elapsed. Weekly and hourly
// dungeons use a plain rolling window.
func dungeonAvailability(def dungeonDef, lastEntry int64, found bool, now time.Time) (bool, int64) {
	if !found {
		return true, 0
	}
	if def.Cooldown == 86400 {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return lastEntry < midnight.Unix(), 0
	}
	nextAvailable := lastEntry + def.Cooldown
	if now.Unix() >= nextAvailable {
		return true, 0
	}
	return false, nextAvailable - now.Unix()
}

// DailyQuests lists tracked daily quests and whether they were completed.
func (s *QuestService) DailyQuests(playerID int64) ([]DailyQuestStatus, error) {
	flags, err := s.flagsWhere(
		"dwPID = ? AND (szName LIKE '%daily%' OR szName LIKE '%gunluk%')",
		playerID)
	if err != nil {
		return nil, err
	}
	return interpretDailyQuests(flags), nil
}

func interpretDailyQuests(flags []FlagRecord) []DailyQuestStatus {
	quests := []DailyQuestStatus{}
	for _, flag := range flags {
		name := strings.ToLower(flag.Name)

		// Target and progress rows describe the same quest as its
		// completion row; only the completion row is reported.
		if strings.Contains(name, "target") || strings.Contains(name, "hedef") {
			continue
		}
		if strings.Contains(name, "count") || strings.Contains(name, "miktar") {
			continue
		}
		if !strings.Contains(name, "completed") && !strings.Contains(name, "done") {
			continue
		}

		completed := flag.Value > 0
		status := "⏳ Devam Ediyor"
		if completed {
			status = "✅ Tamamlandı"
		}
		quests = append(quests, DailyQuestStatus{
			Name:      beautifyQuestName(flag.Name),
			Completed: completed,
			Status:    status,
		})
	}
	return quests
}

// beautifyQuestName turns a flag key like "daily_kill.completed" into a
// display label.
func beautifyQuestName(name string) string {
	replacer := strings.NewReplacer("_", " ", ".", " ", "daily", "", "gunluk", "", "quest", "")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
