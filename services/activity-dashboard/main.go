package main

import (
	"log/slog"
	"net/http"
	"os"
)

func main() {
	// 1. Inicializace Loggeru (strukturovaný JSON, standard pro kontejnery)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 2. Načtení Konfigurace
	cfg := LoadConfig()
	logger.Info("Startuji Activity Dashboard", "port", cfg.HTTPPort, "api_url", cfg.APIURL)

	// 3. Inicializace komponent (Dependency Injection)
	client := NewAPIClient(cfg.APIURL)

	handler, err := NewWebHandler(client, logger)
	if err != nil {
		logger.Error("Kritická chyba: Nepodařilo se načíst HTML šablony", "error", err)
		os.Exit(1)
	}

	// 4. Nastavení Routování
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", handler.HandleIndex)

	// {name} je alias nebo surové ID senzoru (API rozumí obojímu).
	mux.HandleFunc("GET /sensor/{name}", handler.HandleDetail)

	// Healthcheck endpoint pro Docker
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// 5. Spuštění HTTP serveru
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: mux,
	}

	logger.Info("Web server naslouchá", "address", server.Addr)

	// ListenAndServe je blokující volání - program zde "visí" a obsluhuje requesty.
	if err := server.ListenAndServe(); err != nil {
		logger.Error("Server nečekaně spadl", "error", err)
		os.Exit(1)
	}
}
