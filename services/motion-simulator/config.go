package main

import (
	"os"
	"strings"
	"time"
)

// Config drží nastavení simulátoru pohybu.
// Simulátor slouží pro lokální vývoj: doma nemáme cave plnou PIR čidel,
// tak si pohyb vyrábíme sami.
type Config struct {
	MQTTBroker   string
	MQTTClientID string

	// TopicPrefix: kam se publikují eventy. ID senzoru se připojí za lomítko,
	// výsledek např. /iot/cave/motion0/14693767.
	TopicPrefix string

	// SensorIDs: seznam simulovaných senzorů (čárkami oddělený).
	SensorIDs []string

	// Interval mezi dávkami eventů (např. "10s", "1m").
	Interval time.Duration
}

func LoadConfig() Config {
	intervalStr := getEnv("PUBLISH_INTERVAL", "10s")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 10 * time.Second
	}

	idsRaw := getEnv("SENSOR_IDS", "14693767,91150,14694519,14693932")

	return Config{
		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "motion-simulator"),
		TopicPrefix:  getEnv("TOPIC_PREFIX", "/iot/cave/motion0"),
		SensorIDs:    splitIDs(idsRaw),
		Interval:     interval,
	}
}

// splitIDs rozdělí "a, b,c" na ["a","b","c"] a vyhodí prázdné kusy.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
