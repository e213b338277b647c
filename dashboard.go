package main

import "fmt"

// TodoItem is one "what should I do today" recommendation.
type TodoItem struct {
	Priority    string `json:"priority"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuickStats are the dashboard's headline numbers.
type QuickStats struct {
	TotalCharacters   int `json:"total_characters"`
	ItemsInShop       int `json:"items_in_shop"`
	AvailableDungeons int `json:"available_dungeons"`
	ActiveEventsCount int `json:"active_events_count"`
}

// CharacterSummary pairs the character count with the main character.
type CharacterSummary struct {
	TotalCharacters int        `json:"total_characters"`
	MainCharacter   *Character `json:"main_character"`
}

// Dashboard aggregates everything the panel's landing page shows.
type Dashboard struct {
	CharacterSummary CharacterSummary `json:"character_summary"`
	AccountGold      AccountGold      `json:"account_gold"`
	ShopSummary      ShopSummary      `json:"shop_summary"`
	Biologist        BiologistStatus  `json:"biologist"`
	Dungeons         []DungeonStatus  `json:"dungeons"`
	QuickStats       QuickStats       `json:"quick_stats"`
	TodoList         []TodoItem       `json:"todo_list"`
	ActiveEvents     []Event          `json:"active_events"`
}

// DashboardService fans out to the other services and folds their results
// into one view. Partial failures degrade to empty sections rather than
// failing the whole dashboard.
type DashboardService struct {
	characters *CharacterService
	quests     *QuestService
	shop       *ShopService
	events     *EventService
}

func NewDashboardService(characters *CharacterService, quests *QuestService, shop *ShopService, events *EventService) *DashboardService {
	return &DashboardService{
		characters: characters,
		quests:     quests,
		shop:       shop,
		events:     events,
	}
}

// ForAccount builds the dashboard for an account.
func (s *DashboardService) ForAccount(accountID int64) (Dashboard, error) {
	characters, err := s.characters.ByAccount(accountID)
	if err != nil {
		return Dashboard{}, err
	}

	mainChar, err := s.characters.Main(accountID)
	if err != nil {
		return Dashboard{}, err
	}

	gold := AccountGold{GoldFormatted: formatYang(0), Combined: formatYang(0)}
	if total, err := s.characters.TotalGold(accountID); err == nil {
		gold = total
	}

	shopSummary := ShopSummary{HasShop: false}
	biologist := BiologistStatus{Enabled: false}
	dungeons := []DungeonStatus{}

	if mainChar != nil {
		if summary, err := s.shop.Summary(mainChar.ID); err == nil {
			shopSummary = summary
		}
		if status, err := s.quests.BiologistStatus(mainChar.ID); err == nil {
			biologist = status
		}
		if cooldowns, err := s.quests.DungeonCooldowns(mainChar.ID); err == nil {
			dungeons = cooldowns
		}
	}

	events, err := s.events.Events()
	if err != nil {
		events = EventList{Active: []Event{}, Upcoming: []Event{}}
	}

	available := 0
	for _, d := range dungeons {
		if d.Available {
			available++
		}
	}

	return Dashboard{
		CharacterSummary: CharacterSummary{
			TotalCharacters: len(characters),
			MainCharacter:   mainChar,
		},
		AccountGold: gold,
		ShopSummary: shopSummary,
		Biologist:   biologist,
		Dungeons:    dungeons,
		QuickStats: QuickStats{
			TotalCharacters:   len(characters),
			ItemsInShop:       shopSummary.TotalItems,
			AvailableDungeons: available,
			ActiveEventsCount: len(events.Active),
		},
		TodoList:     buildTodoList(biologist, dungeons, events),
		ActiveEvents: events.Active,
	}, nil
}

func buildTodoList(biologist BiologistStatus, dungeons []DungeonStatus, events EventList) []TodoItem {
	todos := []TodoItem{}

	if biologist.Enabled && biologist.CanDeliver {
		todos = append(todos, TodoItem{
			Priority:    "high",
			Icon:        "🧪",
			Title:       "Biyolog Teslimata Hazır",
			Description: "Aşama: " + biologist.StageName,
		})
	}

	for _, dungeon := range dungeons {
		if dungeon.Available {
			todos = append(todos, TodoItem{
				Priority:    "medium",
				Icon:        "⚔️",
				Title:       fmt.Sprintf("%s Müsait", dungeon.Name),
				Description: "Günlük zindan hakkın var",
			})
		}
	}

	for _, event := range events.Active {
		todos = append(todos, TodoItem{
			Priority:    "high",
			Icon:        "🔥",
			Title:       "Etkinlik: " + event.Name,
			Description: event.Description,
		})
	}

	return todos
}
