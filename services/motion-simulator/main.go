package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	// 1. Inicializace Loggeru (JSON na stdout, jako ostatní služby)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 2. Načtení Konfigurace
	cfg := LoadConfig()
	if len(cfg.SensorIDs) == 0 {
		logger.Error("SENSOR_IDS je prázdné, není co simulovat")
		os.Exit(1)
	}
	logger.Info("Startuji Motion Simulator",
		"sensors", len(cfg.SensorIDs), "interval", cfg.Interval)

	// 3. MQTT Klient
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("Selhalo připojení k MQTT", "error", token.Error())
		os.Exit(1) // Bez MQTT nemá smysl běžet
	}
	defer client.Disconnect(250)

	// Pomocná funkce (closure): publikuje jeden "pohyb" daného senzoru.
	// PIR čidla posílají prostě "1" - nic víc v payloadu není,
	// informace je v topicu a čase doručení.
	publish := func(sensorID string) {
		topic := fmt.Sprintf("%s/%s", cfg.TopicPrefix, sensorID)
		token := client.Publish(topic, 0, false, "1")
		token.Wait()

		logger.Info("Pohyb odeslán", "topic", topic)
	}

	// OKAMŽITÁ DÁVKA PŘI STARTU - ať API i dashboard hned něco ukazují
	// a nečeká se na první tik časovače.
	go func() {
		logger.Info("Odesílám úvodní dávku pohybů...")
		for _, id := range cfg.SensorIDs {
			publish(id)
		}
	}()

	// 4. Časovač + signály pro graceful shutdown
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 5. Hlavní smyčka
	logger.Info("Vstupuji do hlavní smyčky")
	for {
		select {
		case <-sigChan:
			logger.Info("Přijat signál ukončení, vypínám...")
			return

		case <-ticker.C:
			// Každý tik se "hýbe" náhodná podmnožina senzorů.
			// Simulace má vypadat jako cave: někde se hýbe pořád,
			// jinde hodiny nic.
			for _, id := range cfg.SensorIDs {
				if rand.Intn(100) < 40 { // ~40% šance na pohyb
					publish(id)
				}
			}
		}
	}
}
