package main

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MqttLogWriter implementuje rozhraní io.Writer.
// Vše, co se do něj zapíše, se odešle do MQTT (topic logs/{service}),
// takže logy všech služeb jdou posbírat jedním odběrem logs/#.
//
// SLEPICE-VEJCE PROBLÉM: logger chceme mít dřív, než se připojí MQTT klient
// (ať můžeme logovat i samotné připojování). Proto se writer vytváří BEZ
// klienta a klient se mu dodá až po připojení přes AttachClient.
// Do té doby (a kdykoliv je broker nedostupný) se MQTT kopie logu zahazuje -
// na stdout jde pořád všechno (MultiWriter v main.go).
//
// Zápis jde přes buffered channel a odesílá ho goroutina na pozadí.
// DŮVOD: logování nesmí blokovat zpracování zpráv ani HTTP requesty.
type MqttLogWriter struct {
	topic string
	lines chan []byte

	mu     sync.RWMutex
	client mqtt.Client // nil, dokud není zavolán AttachClient
}

// NewMqttLogWriter vytvoří writer a spustí odesílací goroutinu.
func NewMqttLogWriter(serviceName string) *MqttLogWriter {
	w := &MqttLogWriter{
		topic: fmt.Sprintf("logs/%s", serviceName),
		lines: make(chan []byte, 256),
	}

	go func() {
		for line := range w.lines {
			w.mu.RLock()
			client := w.client
			w.mu.RUnlock()

			if client == nil || !client.IsConnected() {
				continue // Klient ještě není / broker nejede - řádek zahodíme
			}

			// QoS 0, fire-and-forget: na potvrzení nečekáme (Wait nevoláme).
			client.Publish(w.topic, 0, false, line)
		}
	}()

	return w
}

// AttachClient dodá writeru připojeného MQTT klienta.
func (w *MqttLogWriter) AttachClient(client mqtt.Client) {
	w.mu.Lock()
	w.client = client
	w.mu.Unlock()
}

// Write je metoda vyžadovaná rozhraním io.Writer; slog ji volá pro každý záznam.
func (w *MqttLogWriter) Write(p []byte) (n int, err error) {
	// Payload musíme zkopírovat - slog může buffer 'p' znovu použít dřív,
	// než ho goroutina stihne odeslat.
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.lines <- line:
	default:
		// Buffer plný (broker je pomalý nebo mrtvý) - řádek zahazujeme.
	}

	// io.MultiWriter při chybě přestane psát do ostatních writerů,
	// takže vždy hlásíme úspěch.
	return len(p), nil
}
