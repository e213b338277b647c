package main

import (
	"fmt"
	"sync"
)

// ShopVariant identifies which of the mutually exclusive offline-shop add-ons
// a deployment has installed.
type ShopVariant string

const (
	ShopVariantIkarus ShopVariant = "ikarus"
	ShopVariantGreat  ShopVariant = "great"
	ShopVariantBasic  ShopVariant = "basic"
	ShopVariantNone   ShopVariant = "none"
)

// Marker tables probed in priority order; the first hit decides the variant.
// These names double as the query allow-list: no other table name ever
// reaches the shop queries.
var shopVariantMarkers = []struct {
	variant ShopVariant
	table   string
}{
	{ShopVariantIkarus, "ikashop_offlineshop"},
	{ShopVariantGreat, "offlineshop_shops"},
	{ShopVariantBasic, "offline_shop"},
}

// ShopItem is one listed item in a player's offline shop.
type ShopItem struct {
	Name           string  `json:"name"`
	Vnum           int64   `json:"vnum"`
	Count          int64   `json:"count"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
}

// PlayerShop is the normalized offline-shop view regardless of the installed
// variant.
type PlayerShop struct {
	HasShop    bool       `json:"has_shop"`
	Variant    string     `json:"variant,omitempty"`
	ShopName   string     `json:"shop_name,omitempty"`
	TotalItems int        `json:"total_items"`
	TotalValue string     `json:"total_value"`
	Items      []ShopItem `json:"items"`
	Duration   int64      `json:"duration,omitempty"`
	Map        int64      `json:"map,omitempty"`
}

// ShopSummary is the short form shown on the dashboard.
type ShopSummary struct {
	HasShop    bool   `json:"has_shop"`
	ShopName   string `json:"shop_name,omitempty"`
	TotalItems int    `json:"total_items,omitempty"`
	TotalValue string `json:"total_value,omitempty"`
}

// ShopService detects the installed offline-shop variant once per process and
// reads shops through the matching table layout.
type ShopService struct {
	reg   *Registry
	items *ItemProtoService

	detectOnce sync.Once
	variant    ShopVariant

	// probe is swappable in tests; defaults to a player-database table
	// existence check.
	probe func(table string) bool
}

func NewShopService(reg *Registry, items *ItemProtoService) *ShopService {
	s := &ShopService{reg: reg, items: items}
	s.probe = func(table string) bool {
		return reg.TableExists("player", table)
	}
	return s
}

// DetectVariant probes the marker tables in priority order. Detection runs
// once; the result is held for the life of the process even if tables change
// afterwards.
func (s *ShopService) DetectVariant() ShopVariant {
	s.detectOnce.Do(func() {
		s.variant = ShopVariantNone
		for _, marker := range shopVariantMarkers {
			if s.probe(marker.table) {
				s.variant = marker.variant
				return
			}
		}
	})
	return s.variant
}

// PlayerShop returns the player's offline shop, empty when the deployment has
// no shop add-on or the player has no shop open.
func (s *ShopService) PlayerShop(playerID int64) (PlayerShop, error) {
	empty := PlayerShop{HasShop: false, TotalValue: formatYang(0), Items: []ShopItem{}}

	variant := s.DetectVariant()
	if variant == ShopVariantNone {
		return empty, nil
	}

	shop, items, err := s.readShop(variant, playerID)
	if err != nil {
		return empty, err
	}
	if shop == nil {
		return empty, nil
	}

	ownerName := "Oyuncu"
	if row, err := s.reg.SelectOne("player",
		"SELECT name FROM player WHERE id = ?", playerID); err == nil && row != nil {
		ownerName = valueString(row["name"])
	}

	result := PlayerShop{
		HasShop:  true,
		Variant:  string(variant),
		ShopName: ownerName + "'nın Pazarı",
		Duration: valueInt(shop["duration"]),
		Map:      valueInt(shop["map"]),
		Items:    []ShopItem{},
	}

	var totalValue float64
	for _, item := range items {
		vnum := valueInt(firstValue(item, "vnum", "item_vnum"))
		count := valueInt(firstValue(item, "count", "item_count"))
		if count == 0 {
			count = 1
		}
		price := valueFloat(firstValue(item, "price", "gold_price"))

		result.Items = append(result.Items, ShopItem{
			Name:           s.items.Name(vnum),
			Vnum:           vnum,
			Count:          count,
			Price:          price,
			PriceFormatted: formatYang(price),
		})
		totalValue += price * float64(count)
	}

	result.TotalItems = len(result.Items)
	result.TotalValue = formatYang(totalValue)
	return result, nil
}

// readShop runs the variant-specific queries. Table and column names come
// from the fixed layouts below, never from the caller.
func (s *ShopService) readShop(variant ShopVariant, playerID int64) (map[string]interface{}, []map[string]interface{}, error) {
	switch variant {
	case ShopVariantIkarus:
		shop, err := s.reg.SelectOne("player",
			"SELECT * FROM ikashop_offlineshop WHERE owner = ?", playerID)
		if err != nil || shop == nil {
			return nil, nil, err
		}
		items, err := s.reg.Select("player",
			"SELECT * FROM ikashop_safebox WHERE player_id = ?", playerID)
		return shop, items, err

	case ShopVariantGreat:
		shop, err := s.reg.SelectOne("player",
			"SELECT * FROM offlineshop_shops WHERE owner = ?", playerID)
		if err != nil || shop == nil {
			return nil, nil, err
		}
		items, err := s.reg.Select("player",
			"SELECT * FROM offlineshop_items WHERE owner = ?", playerID)
		return shop, items, err

	case ShopVariantBasic:
		shop, err := s.reg.SelectOne("player",
			"SELECT * FROM offline_shop WHERE owner = ?", playerID)
		if err != nil || shop == nil {
			return nil, nil, err
		}
		items, err := s.reg.Select("player",
			"SELECT * FROM offline_shop_item WHERE owner_id = ?", playerID)
		return shop, items, err

	default:
		return nil, nil, fmt.Errorf("unknown shop variant: %s", variant)
	}
}

// Summary condenses the shop for the dashboard.
func (s *ShopService) Summary(playerID int64) (ShopSummary, error) {
	shop, err := s.PlayerShop(playerID)
	if err != nil {
		return ShopSummary{}, err
	}
	if !shop.HasShop {
		return ShopSummary{HasShop: false}, nil
	}
	return ShopSummary{
		HasShop:    true,
		ShopName:   shop.ShopName,
		TotalItems: shop.TotalItems,
		TotalValue: shop.TotalValue,
	}, nil
}
