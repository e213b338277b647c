package main

import "time"

// Event is one scheduled server event from the common database.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time,omitempty"`
	Remaining   string `json:"remaining,omitempty"`
	StartsIn    string `json:"starts_in,omitempty"`
	Rate        int64  `json:"rate,omitempty"`
}

// EventList splits events into running and scheduled.
type EventList struct {
	Active   []Event `json:"active"`
	Upcoming []Event `json:"upcoming"`
}

// EventService reads the optional common.event table. A deployment without
// the event add-on simply reports no events.
type EventService struct {
	reg *Registry
	now func() time.Time
}

func NewEventService(reg *Registry) *EventService {
	return &EventService{reg: reg, now: time.Now}
}

// Events returns active and upcoming events, empty when the table is absent.
func (s *EventService) Events() (EventList, error) {
	empty := EventList{Active: []Event{}, Upcoming: []Event{}}

	if !s.reg.TableExists("common", "event") {
		return empty, nil
	}

	now := s.now().Unix()

	activeRows, err := s.reg.Select("common",
		"SELECT * FROM event WHERE start_time <= ? AND end_time >= ? ORDER BY start_time ASC",
		now, now)
	if err != nil {
		return empty, err
	}
	upcomingRows, err := s.reg.Select("common",
		"SELECT * FROM event WHERE start_time > ? ORDER BY start_time ASC LIMIT 10", now)
	if err != nil {
		return empty, err
	}

	list := EventList{Active: []Event{}, Upcoming: []Event{}}
	for _, row := range activeRows {
		end := valueInt(row["end_time"])
		list.Active = append(list.Active, Event{
			Name:        eventName(row),
			Description: valueString(row["description"]),
			Icon:        "🔥",
			StartTime:   valueInt(row["start_time"]),
			EndTime:     end,
			Remaining:   formatEventDuration(end - now),
			Rate:        valueInt(row["rate"]),
		})
	}
	for _, row := range upcomingRows {
		start := valueInt(row["start_time"])
		list.Upcoming = append(list.Upcoming, Event{
			Name:        eventName(row),
			Description: valueString(row["description"]),
			Icon:        "📅",
			StartTime:   start,
			StartsIn:    formatEventDuration(start - now),
		})
	}
	return list, nil
}

func eventName(row map[string]interface{}) string {
	if name := valueString(row["name"]); name != "" {
		return name
	}
	return "Etkinlik"
}
