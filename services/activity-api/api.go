package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// APIHandler sdružuje metody pro obsluhu HTTP požadavků.
// Čte ze store, překládá ID přes AliasResolver a renderuje JSON.
// Jen čtení - žádný endpoint nemění stav.
type APIHandler struct {
	store   *ActivityStore
	aliases *AliasResolver
	logger  *slog.Logger
}

// NewAPIHandler vytváří novou instanci handleru.
func NewAPIHandler(store *ActivityStore, aliases *AliasResolver, logger *slog.Logger) *APIHandler {
	return &APIHandler{store: store, aliases: aliases, logger: logger}
}

// RegisterRoutes mapuje URL cesty na konkrétní Go funkce.
// Využíváme router z Go 1.22+, který podporuje metody a wildcardy.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	// Přehled všech senzorů a jejich historie
	mux.HandleFunc("GET /sensors", h.handleListSensors)

	// Historie jednoho senzoru. {id} je Path Value - proměnná v URL.
	mux.HandleFunc("GET /sensors/{id}", h.handleGetSensor)

	// Stav hostitele/procesu (viz status.go)
	mux.HandleFunc("GET /status", h.handleStatus)
}

// handleListSensors: GET /sensors
//
// Odpověď: JSON objekt, klíč je alias senzoru (nebo surové ID, pokud alias
// není nakonfigurovaný), hodnota je historie od nejnovějšího záznamu:
//
//	{"lounge": [{"value":"1","receivedAt":"..."}], "14694519": [...]}
func (h *APIHandler) handleListSensors(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.SnapshotAll()

	// Přeložíme klíče na aliasy. Pokud by dva senzory sdílely stejný alias
	// (chyba konfigurace), vyhraje jeden z nich - hlídá to test konfigurace,
	// ne runtime.
	out := make(map[string][]ActivityRecord, len(snapshot))
	for id, records := range snapshot {
		out[h.aliases.Resolve(id)] = records
	}

	writeJSON(w, h.logger, out)
}

// handleGetSensor: GET /sensors/{id}
//
// Přijímá surové ID i alias (dashboard zobrazuje aliasy, tak ať se jimi
// dá rovnou i ptát). Neznámý senzor = 200 a prázdné pole "[]".
// DŮVOD: "ještě se nehýbalo" není chyba a klient nemusí ošetřovat 404.
func (h *APIHandler) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	records := h.store.SnapshotOne(id)
	if len(records) == 0 {
		// Pod surovým ID nic není - zkusíme to vzít jako alias.
		if realID, ok := h.aliases.ReverseLookup(id); ok {
			records = h.store.SnapshotOne(realID)
		}
	}

	writeJSON(w, h.logger, records)
}

// writeJSON serializuje odpověď přímo do ResponseWriteru.
// json.NewEncoder je efektivnější než json.Marshal pro streamování dat.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Klient nejspíš zavřel spojení - odpověď už je rozepsaná,
		// takže nejde poslat error status, jen logujeme.
		logger.Error("Chyba při zápisu JSON odpovědi", "error", err)
	}
}

// CorsMiddleware je "obalová" funkce (Middleware).
// Přidává HTTP hlavičky, které povolí prohlížeči volat toto API
// z jiného portu/domény (dashboard na :3000).
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Povolíme přístup odkudkoliv (*) - API je read-only a bez auth.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// "Preflight" request (prohlížeč se ptá "můžu?") - odpovíme OK a končíme.
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
