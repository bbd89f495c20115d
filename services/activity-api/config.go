package main

import (
	"log/slog"
	"os"
	"strconv"
)

// Config drží konfiguraci celé služby.
// Princip 12-Factor App: konfigurace žije v ENV proměnných, ne v kódu.
type Config struct {
	// MQTT Konfigurace
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string // Prázdné = broker nevyžaduje autentizaci
	MQTTPassword string

	// MotionTopic: topic s wildcardem, na kterém senzory hlásí pohyb.
	// Poslední segment topicu je ID senzoru (např. /iot/cave/motion0/14693767).
	MotionTopic string

	// HistoryLength: kolik posledních pohybů si pamatujeme pro každý senzor.
	// Platí pro celý běh procesu - změna vyžaduje restart (a zahodí historii).
	HistoryLength int

	// AliasesJSON: mapa ID -> čitelný název, jako JSON objekt.
	// Ignoruje se, pokud je nastaven PostgresURL (aliasy pak jedou z DB).
	AliasesJSON string

	// PostgresURL: VOLITELNÉ. Pokud je nastaveno, aliasy se při startu
	// načtou z tabulky sensor_aliases místo z ENV.
	PostgresURL string

	// ValkeyAddr: VOLITELNÉ. Pokud je nastaveno, poslední aktivita každého
	// senzoru se zrcadlí do Valkey (pro ostatní služby v domácnosti).
	ValkeyAddr string

	// App Konfigurace
	HTTPPort string
	LogLevel string
}

// DefaultHistoryLength je fallback, když HISTORY_LENGTH chybí nebo je rozbité.
const DefaultHistoryLength = 10

// LoadConfig načte nastavení. Pokud proměnná chybí, použije bezpečný default.
func LoadConfig() Config {
	return Config{
		// Defaultní broker je ten náš v cave (viz původní Python verze).
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://mqtt.svc.cave.avaruuskerho.fi:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "activity-api"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),

		// '+' je MQTT wildcard pro jeden segment - odebíráme všechny senzory.
		MotionTopic: getEnv("MOTION_TOPIC", "/iot/cave/motion0/+"),

		HistoryLength: getEnvPositiveInt("HISTORY_LENGTH", DefaultHistoryLength),

		AliasesJSON: getEnv("ALIASES", ""),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		ValkeyAddr:  getEnv("VALKEY_ADDR", ""),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv je pomocná funkce pro DRY (Don't Repeat Yourself).
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvPositiveInt načte kladné celé číslo z ENV.
// Nula, záporné číslo nebo nesmysl ("deset") -> warning + fallback.
// Nechceme kvůli překlepu v ENV spadnout, služba má běžet.
func getEnvPositiveInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		slog.Warn("Neplatná hodnota ENV proměnné, používám default",
			"key", key, "value", raw, "default", fallback)
		return fallback
	}
	return n
}
