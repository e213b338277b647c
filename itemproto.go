package main

import (
	"fmt"
	"strings"
	"sync"
)

// ItemProtoService resolves item vnums to display names. The proto table is
// large and immutable while the game server runs, so it is loaded once per
// process.
type ItemProtoService struct {
	reg *Registry

	loadOnce sync.Once
	names    map[int64]string
}

func NewItemProtoService(reg *Registry) *ItemProtoService {
	return &ItemProtoService{reg: reg}
}

func (s *ItemProtoService) load() {
	s.loadOnce.Do(func() {
		s.names = map[int64]string{}

		// Localized tables carry locale_name, stock tables only name.
		nameCol := "name"
		for _, col := range s.reg.Columns("player", "item_proto") {
			if col == "locale_name" {
				nameCol = "locale_name"
				break
			}
		}

		rows, err := s.reg.Select("player", "SELECT vnum, "+nameCol+" FROM item_proto")
		if err != nil {
			// Leave the table empty; names fall back to "Item #vnum".
			return
		}
		for _, row := range rows {
			s.names[valueInt(row["vnum"])] = valueString(row[nameCol])
		}
	})
}

// Name returns the localized item name, or a numbered placeholder for vnums
// the proto table does not know.
func (s *ItemProtoService) Name(vnum int64) string {
	s.load()
	if name, ok := s.names[vnum]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Item #%d", vnum)
}

// ItemMatch is one search hit.
type ItemMatch struct {
	Vnum int64  `json:"vnum"`
	Name string `json:"name"`
}

// Search finds items whose name contains the query, case-insensitively.
func (s *ItemProtoService) Search(query string, limit int) []ItemMatch {
	s.load()
	query = strings.ToLower(query)

	results := []ItemMatch{}
	for vnum, name := range s.names {
		if !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		results = append(results, ItemMatch{Vnum: vnum, Name: name})
		if len(results) >= limit {
			break
		}
	}
	return results
}
