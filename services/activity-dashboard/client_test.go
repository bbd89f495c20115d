package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Falešné Activity API pro testy klienta.
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /sensors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"lounge": [{"value":"1","receivedAt":"2026-08-23T10:00:00Z"}],
			"isel":   [{"value":"1","receivedAt":"2026-08-23T12:00:00Z"},
			           {"value":"1","receivedAt":"2026-08-23T11:30:00Z"}]
		}`))
	})

	mux.HandleFunc("GET /sensors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.PathValue("id") == "lounge" {
			w.Write([]byte(`[{"value":"1","receivedAt":"2026-08-23T10:00:00Z"}]`))
			return
		}
		w.Write([]byte(`[]`))
	})

	return httptest.NewServer(mux)
}

// Senzory musí přijít seřazené podle poslední aktivity (nejčerstvější první).
func TestGetSensorsSortsByLastSeen(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client := NewAPIClient(srv.URL)
	sensors, err := client.GetSensors()
	if err != nil {
		t.Fatalf("neočekávaná chyba: %v", err)
	}

	if len(sensors) != 2 {
		t.Fatalf("očekávány 2 senzory, dostal jsem %d", len(sensors))
	}
	if sensors[0].Name != "isel" || sensors[1].Name != "lounge" {
		t.Errorf("špatné pořadí: %s, %s", sensors[0].Name, sensors[1].Name)
	}
	if sensors[0].LastSeen.IsZero() {
		t.Error("LastSeen se nevyplnilo z prvního záznamu")
	}
}

func TestGetHistory(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client := NewAPIClient(srv.URL)
	records, err := client.GetHistory("lounge")
	if err != nil {
		t.Fatalf("neočekávaná chyba: %v", err)
	}
	if len(records) != 1 || records[0].Value != "1" {
		t.Fatalf("očekáván 1 záznam, dostal jsem %+v", records)
	}
}

// Neznámý senzor: API vrací prázdné pole, klient NESMÍ vrátit chybu.
func TestGetHistoryUnknownSensor(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client := NewAPIClient(srv.URL)
	records, err := client.GetHistory("neexistuje")
	if err != nil {
		t.Fatalf("neočekávaná chyba: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("očekáváno prázdné pole, dostal jsem %+v", records)
	}
}

func TestHumanAge(t *testing.T) {
	if got := humanAge(time.Time{}); got != "nikdy" {
		t.Errorf("nulový čas: očekáváno 'nikdy', dostal jsem '%s'", got)
	}
	if got := humanAge(time.Now().Add(-30 * time.Second)); got != "před chvílí" {
		t.Errorf("30s: očekáváno 'před chvílí', dostal jsem '%s'", got)
	}
	if got := humanAge(time.Now().Add(-5 * time.Minute)); got != "před 5 min" {
		t.Errorf("5min: očekáváno 'před 5 min', dostal jsem '%s'", got)
	}
}
