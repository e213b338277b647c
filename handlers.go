package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
)

const agentVersion = "2.0.0"

// App bundles the registry and services the handlers close over.
type App struct {
	reg        *Registry
	auth       *AuthService
	characters *CharacterService
	quests     *QuestService
	shop       *ShopService
	events     *EventService
	messages   *MessageService
	ranking    *RankingService
	stats      *StatsService
	social     *SocialService
	guilds     *GuildService
	items      *ItemProtoService
	dashboard  *DashboardService
}

func writeSuccess(w http.ResponseWriter, data map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// withCORS mirrors the headers the browser panel expects and short-circuits
// preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAccount authenticates the request or writes a 401 and returns nil.
func (app *App) requireAccount(w http.ResponseWriter, r *http.Request) *Identity {
	identity, err := app.auth.FromRequest(r)
	if err != nil {
		writeError(w, "Oturum gerekli", http.StatusUnauthorized)
		return nil
	}
	return identity
}

// ownedCharacter resolves the character_id query parameter and verifies the
// character belongs to the authenticated account. Writes the error response
// itself and returns nil on any failure.
func (app *App) ownedCharacter(w http.ResponseWriter, r *http.Request, identity *Identity) *Character {
	characterID, err := strconv.ParseInt(r.URL.Query().Get("character_id"), 10, 64)
	if err != nil || characterID <= 0 {
		writeError(w, "Karakter ID gerekli", http.StatusBadRequest)
		return nil
	}

	character, err := app.characters.ByID(characterID, identity.AccountID)
	if err != nil {
		log.Println("character lookup failed:", err)
		writeError(w, "Sunucu hatası", http.StatusInternalServerError)
		return nil
	}
	if character == nil {
		writeError(w, "Karakter bulunamadı", http.StatusNotFound)
		return nil
	}
	return character
}

func statusHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, map[string]interface{}{
			"agent_version":      agentVersion,
			"database_connected": app.reg.Connected(),
			"discovery_log":      app.reg.DiscoveryLog(),
			"config":             app.reg.RedactedConfig(),
		})
	}
}

func loginHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "POST gerekli", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Login    string `json:"login"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if req.Login == "" || req.Password == "" {
			writeError(w, "Kullanıcı adı ve şifre gerekli", http.StatusBadRequest)
			return
		}

		token, identity, err := app.auth.Login(req.Login, req.Password)
		switch {
		case err == nil:
			writeSuccess(w, map[string]interface{}{
				"token":      token,
				"account_id": identity.AccountID,
				"login":      identity.Login,
			})
		case errors.Is(err, ErrInvalidCredentials):
			writeError(w, "Geçersiz kullanıcı adı veya şifre", http.StatusUnauthorized)
		case errors.Is(err, ErrAccountBanned):
			writeError(w, "Hesabınız engellenmiş", http.StatusUnauthorized)
		default:
			log.Println("login failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
		}
	}
}

func charactersHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		characters, err := app.characters.ByAccount(identity.AccountID)
		if err != nil {
			log.Println("characters query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"characters": characters})
	}
}

func characterHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		characterID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil || characterID <= 0 {
			writeError(w, "Karakter ID gerekli", http.StatusBadRequest)
			return
		}

		character, err := app.characters.ByID(characterID, identity.AccountID)
		if err != nil {
			log.Println("character query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		if character == nil {
			writeError(w, "Karakter bulunamadı", http.StatusNotFound)
			return
		}
		writeSuccess(w, map[string]interface{}{"character": character})
	}
}

func dashboardHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		dashboard, err := app.dashboard.ForAccount(identity.AccountID)
		if err != nil {
			log.Println("dashboard build failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"dashboard": dashboard})
	}
}

func shopHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		shop, err := app.shop.PlayerShop(character.ID)
		if err != nil {
			log.Println("shop query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"shop": shop})
	}
}

func eventsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		events, err := app.events.Events()
		if err != nil {
			log.Println("events query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"events": events})
	}
}

func messagesHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		characterName := r.URL.Query().Get("character")
		if characterName == "" {
			writeError(w, "Karakter adı gerekli", http.StatusBadRequest)
			return
		}

		// The name must belong to the authenticated account.
		characters, err := app.characters.ByAccount(identity.AccountID)
		if err != nil {
			log.Println("characters query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		owned := false
		for _, c := range characters {
			if c.Name == characterName {
				owned = true
				break
			}
		}
		if !owned {
			writeError(w, "Bu karakter size ait değil", http.StatusForbidden)
			return
		}

		// An explicit contact narrows the response to one conversation,
		// oldest message first.
		if contact := r.URL.Query().Get("with"); contact != "" {
			messages, err := app.messages.With(characterName, contact, 100)
			if err != nil {
				log.Println("messages query failed:", err)
				writeError(w, "Sunucu hatası", http.StatusInternalServerError)
				return
			}
			writeSuccess(w, map[string]interface{}{"messages": messages})
			return
		}

		conversations, err := app.messages.History(characterName, 100)
		if err != nil {
			log.Println("messages query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"conversations": conversations})
	}
}

func biologistHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		status, err := app.quests.BiologistStatus(character.ID)
		if err != nil {
			log.Println("biologist query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"biologist": status})
	}
}

func dungeonsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		dungeons, err := app.quests.DungeonCooldowns(character.ID)
		if err != nil {
			log.Println("dungeons query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"dungeons": dungeons})
	}
}

func dailyQuestsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		quests, err := app.quests.DailyQuests(character.ID)
		if err != nil {
			log.Println("daily quests query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"daily_quests": quests})
	}
}

func questFlagsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		if name := r.URL.Query().Get("name"); name != "" {
			value, err := app.quests.Flag(character.ID, name)
			if err != nil {
				log.Println("quest flag query failed:", err)
				writeError(w, "Sunucu hatası", http.StatusInternalServerError)
				return
			}
			writeSuccess(w, map[string]interface{}{"name": name, "value": value})
			return
		}

		flags, err := app.quests.Flags(character.ID)
		if err != nil {
			log.Println("quest flags query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"flags": flags})
	}
}

func rankingHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		var (
			ranking []RankingEntry
			err     error
		)
		switch r.URL.Query().Get("type") {
		case "", "level":
			ranking, err = app.ranking.TopLevel()
		case "gold":
			ranking, err = app.ranking.TopGold()
		case "alignment":
			ranking, err = app.ranking.TopAlignment()
		default:
			writeError(w, "Geçersiz sıralama tipi", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Println("ranking query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{"ranking": ranking})
	}
}

func statsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		// The log database is optional; failed sections degrade to their
		// zero values instead of failing the whole response.
		playtime, err := app.stats.TotalPlaytime(identity.AccountID)
		if err != nil {
			log.Println("playtime query failed:", err)
		}
		levels, err := app.stats.LevelProgression(character.ID, 20)
		if err != nil {
			log.Println("level log query failed:", err)
		}
		gold, err := app.stats.GoldStatistics(character.ID)
		if err != nil {
			log.Println("gold log query failed:", err)
		}
		refine, err := app.stats.RefineStatistics(character.ID)
		if err != nil {
			log.Println("refine log query failed:", err)
		}
		fishing, err := app.stats.FishingStatistics(character.ID)
		if err != nil {
			log.Println("fish log query failed:", err)
		}

		writeSuccess(w, map[string]interface{}{
			"playtime": playtime,
			"levels":   levels,
			"gold":     gold,
			"refine":   refine,
			"fishing":  fishing,
		})
	}
}

func socialHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		marriage, err := app.social.Marriage(character.ID)
		if err != nil {
			log.Println("marriage query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		friends, err := app.social.Friends(identity.Login)
		if err != nil {
			log.Println("friends query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}
		writeSuccess(w, map[string]interface{}{
			"marriage": marriage,
			"friends":  friends,
		})
	}
}

func guildHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}
		character := app.ownedCharacter(w, r, identity)
		if character == nil {
			return
		}

		guild, err := app.guilds.ForPlayer(character.ID)
		if err != nil {
			log.Println("guild query failed:", err)
			writeError(w, "Sunucu hatası", http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{"guild": guild}
		if guild.HasGuild {
			if members, err := app.guilds.Members(guild.GuildID); err == nil {
				response["members"] = members
			}
		}
		writeSuccess(w, response)
	}
}

func itemSearchHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.requireAccount(w, r)
		if identity == nil {
			return
		}

		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, "Arama terimi gerekli", http.StatusBadRequest)
			return
		}
		writeSuccess(w, map[string]interface{}{
			"items": app.items.Search(query, 20),
		})
	}
}

func registerRoutes(mux *http.ServeMux, app *App) {
	mux.HandleFunc("/status", statusHandler(app))
	mux.HandleFunc("/login", loginHandler(app))
	mux.HandleFunc("/characters", charactersHandler(app))
	mux.HandleFunc("/character", characterHandler(app))
	mux.HandleFunc("/dashboard", dashboardHandler(app))
	mux.HandleFunc("/shop", shopHandler(app))
	mux.HandleFunc("/events", eventsHandler(app))
	mux.HandleFunc("/messages", messagesHandler(app))
	mux.HandleFunc("/biologist", biologistHandler(app))
	mux.HandleFunc("/dungeons", dungeonsHandler(app))
	mux.HandleFunc("/daily-quests", dailyQuestsHandler(app))
	mux.HandleFunc("/quests", questFlagsHandler(app))
	mux.HandleFunc("/ranking", rankingHandler(app))
	mux.HandleFunc("/stats", statsHandler(app))
	mux.HandleFunc("/social", socialHandler(app))
	mux.HandleFunc("/guild", guildHandler(app))
	mux.HandleFunc("/items/search", itemSearchHandler(app))
}
