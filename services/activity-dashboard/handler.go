package main

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

// WebHandler slouží jako "Controller". Připravuje data a renderuje HTML.
type WebHandler struct {
	client *APIClient
	logger *slog.Logger
	tmpl   *template.Template
}

// NewWebHandler inicializuje šablony a registruje pomocné funkce.
func NewWebHandler(client *APIClient, logger *slog.Logger) (*WebHandler, error) {
	// Vlastní funkce pro šablony (FuncMap). Musí se registrovat PŘED
	// parsováním souborů, jinak parser názvy funkcí nezná.
	funcMap := template.FuncMap{
		// "timeago": lidsky čitelné stáří ("před 2 min").
		// Přesný čas je v title atributu, tohle je pro rychlý pohled.
		"timeago": humanAge,

		// "fmtTime": plný lokální čas pro tabulku historie.
		"fmtTime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04:05")
		},
	}

	tmpl, err := template.New("base").Funcs(funcMap).ParseGlob(filepath.Join("templates", "*.html"))
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		client: client,
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// humanAge převede stáří času na text typu "před 2 min".
func humanAge(t time.Time) string {
	if t.IsZero() {
		return "nikdy"
	}
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "před chvílí"
	case age < time.Hour:
		return fmt.Sprintf("před %d min", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("před %d h", int(age.Hours()))
	default:
		return fmt.Sprintf("před %d dny", int(age.Hours()/24))
	}
}

// HandleIndex: přehled senzorů a jejich poslední aktivity.
func (h *WebHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	sensors, err := h.client.GetSensors()
	if err != nil {
		h.logger.Error("Chyba načítání dat", "error", err)
		http.Error(w, "Backend nedostupný", http.StatusBadGateway)
		return
	}

	data := map[string]interface{}{
		"Title":   "Cave Activity",
		"Sensors": sensors,
		"Page":    "index",
	}

	// layout.html si podle .Page vybere, který obsahový blok vloží.
	if err := h.tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("Chyba renderování", "error", err)
	}
}

// HandleDetail: historie jednoho senzoru.
// {name} je alias nebo surové ID - API rozumí obojímu.
func (h *WebHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	records, err := h.client.GetHistory(name)
	if err != nil {
		h.logger.Error("Chyba API historie", "sensor", name, "error", err)
		http.Error(w, "Backend nedostupný", http.StatusBadGateway)
		return
	}

	data := map[string]interface{}{
		"Title":   "Detail: " + name,
		"Name":    name,
		"Records": records,
		"Page":    "detail",
	}

	if err := h.tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("Chyba renderování", "error", err)
	}
}
