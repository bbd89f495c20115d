package main

import "os"

// Config drží veškeré nastavení, které dashboard potřebuje k běhu.
type Config struct {
	// HTTPPort: Port, na kterém bude naslouchat webový server (např. "3000").
	HTTPPort string

	// APIURL: Adresa backendu (Activity API).
	// Dashboard NEMLUVÍ s MQTT ani nedrží žádná data - je to jen "okno"
	// na data, která servíruje API.
	APIURL string
}

// LoadConfig načte konfiguraci z ENV. Pokud proměnná chybí, použije default.
func LoadConfig() Config {
	return Config{
		HTTPPort: getEnv("HTTP_PORT", "3000"),
		APIURL:   getEnv("API_URL", "http://localhost:8080"),
	}
}

// getEnv je pomocná funkce pro čtení ENV s fallbackem.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
