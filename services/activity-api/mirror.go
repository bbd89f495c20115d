package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LiveMirror zrcadlí poslední aktivitu každého senzoru do Valkey (Redis).
//
// PROČ: ostatní služby v domácnosti (dashboard, automatizace) chtějí vědět
// "kdy se kde naposledy hýbalo" bez toho, aby tloukly do našeho HTTP API.
// Zrcadlo je čistě "hot cache" - zdrojem pravdy zůstává paměťový store
// a historie jako taková se nikam nepersistuje.
type LiveMirror struct {
	rdb *redis.Client
}

// mirrorTTL: klíče expirují po 24h, aby mrtvé senzory samy zmizely z cache.
const mirrorTTL = 24 * time.Hour

// NewLiveMirror se připojí k Valkey a ověří spojení Pingem.
func NewLiveMirror(ctx context.Context, addr string) (*LiveMirror, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Valkey není dostupný: %w", err)
	}
	return &LiveMirror{rdb: rdb}, nil
}

// Publish přepíše poslední známou aktivitu senzoru.
// Klíč: "sensor:last:{id}", hodnota: payload, expirace 24h.
func (m *LiveMirror) Publish(ctx context.Context, sensorID, value string) error {
	key := fmt.Sprintf("sensor:last:%s", sensorID)
	if err := m.rdb.Set(ctx, key, value, mirrorTTL).Err(); err != nil {
		return fmt.Errorf("chyba zápisu do Valkey: %w", err)
	}
	return nil
}

// Close uzavře spojení při ukončení aplikace.
func (m *LiveMirror) Close() {
	m.rdb.Close()
}
