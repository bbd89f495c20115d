package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// --- DATOVÉ MODELY (DTO) ---
// Musí přesně odpovídat JSONu, který posílá Activity API.

// ActivityRecord je jeden zaznamenaný pohyb.
type ActivityRecord struct {
	Value      string    `json:"value"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// SensorView je jeden senzor připravený pro šablonu.
// API vrací mapu název -> historie; mapa se v HTML blbě iteruje v rozumném
// pořadí, tak si ji klient přeskládá do seřazeného pole.
type SensorView struct {
	// Name: alias senzoru, nebo surové ID, pokud alias není nastavený.
	Name string

	// Records: historie pohybů, nejnovější první (tak to posílá API).
	Records []ActivityRecord

	// LastSeen: čas posledního pohybu (= Records[0], vytažené pro šablonu).
	LastSeen time.Time
}

// APIClient zapouzdřuje HTTP volání na Activity API.
// Handlery díky němu neřeší URL adresy, JSON decoding ani status kódy.
type APIClient struct {
	BaseURL    string
	httpClient *http.Client
}

// NewAPIClient vytváří instanci klienta.
// Důležité: Vždy nastavujeme Timeout! Defaultní http.Client v Go žádný nemá,
// takže kdyby API neodpovídalo, dashboard by "visel" navěky.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GetSensors zavolá GET /sensors a vrátí senzory seřazené podle
// poslední aktivity (naposledy "živý" senzor první).
func (c *APIClient) GetSensors() ([]SensorView, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/sensors")
	if err != nil {
		return nil, fmt.Errorf("chyba sítě při volání API: %w", err)
	}
	// Body musíme vždy zavřít, jinak tečou file descriptory.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API vrátilo chybný status: %d", resp.StatusCode)
	}

	// API posílá: {"lounge": [{"value":"1","receivedAt":"..."}], ...}
	var raw map[string][]ActivityRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("chyba při parsování JSONu: %w", err)
	}

	sensors := make([]SensorView, 0, len(raw))
	for name, records := range raw {
		view := SensorView{Name: name, Records: records}
		if len(records) > 0 {
			view.LastSeen = records[0].ReceivedAt
		}
		sensors = append(sensors, view)
	}

	// Nejčerstvější aktivita nahoru; při shodě aspoň stabilně podle jména.
	sort.Slice(sensors, func(i, j int) bool {
		if !sensors[i].LastSeen.Equal(sensors[j].LastSeen) {
			return sensors[i].LastSeen.After(sensors[j].LastSeen)
		}
		return sensors[i].Name < sensors[j].Name
	})

	return sensors, nil
}

// GetHistory zavolá GET /sensors/{name}. API bere surové ID i alias,
// takže můžeme rovnou použít název zobrazený na dashboardu.
func (c *APIClient) GetHistory(name string) ([]ActivityRecord, error) {
	// PathEscape kvůli aliasům s mezerou nebo diakritikou (např. "säätöpöytä").
	reqURL := fmt.Sprintf("%s/sensors/%s", c.BaseURL, url.PathEscape(name))

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var records []ActivityRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	return records, nil
}
