package main

import (
	"crypto/rand"
	"log"
	"net/http"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	manual := cfg.manualCredentials()
	if manual != nil {
		log.Println("Using manual database configuration from environment")
	} else {
		log.Println("No manual database configuration; discovery will run on first use")
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// Sessions die on restart with a random secret; fine for a panel
		// agent but worth flagging to the operator.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal("failed to generate session secret:", err)
		}
		log.Println("WARN: JWT_SECRET not set, generated a per-process secret")
	}

	reg := NewRegistry(manual)

	items := NewItemProtoService(reg)
	characters := NewCharacterService(reg)
	quests := NewQuestService(reg)
	shop := NewShopService(reg, items)
	events := NewEventService(reg)

	app := &App{
		reg:        reg,
		auth:       NewAuthService(reg, secret),
		characters: characters,
		quests:     quests,
		shop:       shop,
		events:     events,
		messages:   NewMessageService(reg),
		ranking:    NewRankingService(reg),
		stats:      NewStatsService(reg),
		social:     NewSocialService(reg),
		guilds:     NewGuildService(reg),
		items:      items,
		dashboard:  NewDashboardService(characters, quests, shop, events),
	}

	mux := http.NewServeMux()
	registerRoutes(mux, app)

	addr := "0.0.0.0:" + cfg.Port
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatal("server failed:", err)
	}
}
