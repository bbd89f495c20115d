package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// 1. Načtení Konfigurace
	cfg := LoadConfig()

	// 2. Setup Loggeru
	// JSON na stdout (standard pro kontejnery) + kopie do MQTT (logs/activity-api).
	// MQTT writer zatím nemá klienta - dostane ho po připojení (AttachClient).
	mqttWriter := NewMqttLogWriter("activity-api")
	multi := io.MultiWriter(os.Stdout, mqttWriter)
	logger := slog.New(slog.NewJSONHandler(multi, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("Startuji Activity API",
		"broker", cfg.MQTTBroker, "topic", cfg.MotionTopic, "history_length", cfg.HistoryLength)

	ctx := context.Background()

	// 3. Store - jediný stavový objekt celé služby.
	// Vytváříme ho tady v main a PŘEDÁVÁME referencí subscriberu i API vrstvě.
	// Žádný globální singleton: životnost je vidět na první pohled a testy
	// si vyrábí vlastní čerstvé instance.
	store := NewActivityStore(cfg.HistoryLength)

	// 4. Aliasy: z Postgresu (pokud je nakonfigurovaný), jinak z ENV.
	// Načítá se JEDNOU - mapa je potom neměnná až do restartu.
	aliasMap, err := loadAliases(ctx, cfg, logger)
	if err != nil {
		logger.Error("Kritická chyba: Nepodařilo se načíst aliasy", "error", err)
		os.Exit(1)
	}
	aliases := NewAliasResolver(aliasMap)
	logger.Info("Aliasy načteny", "count", len(aliasMap))

	// 5. Volitelné zrcadlo poslední aktivity do Valkey.
	var mirror *LiveMirror
	if cfg.ValkeyAddr != "" {
		mirror, err = NewLiveMirror(ctx, cfg.ValkeyAddr)
		if err != nil {
			logger.Error("Kritická chyba: Nelze se připojit k Valkey", "error", err)
			os.Exit(1)
		}
		defer mirror.Close()
		logger.Info("Zrcadlení do Valkey zapnuto", "addr", cfg.ValkeyAddr)
	}

	// 6. MQTT Klient
	// Odběr se registruje v OnConnect handleru (viz subscriber.go), takže
	// ho stačí nastavit tady a přežije i každý reconnect.
	opts := NewSubscriberOptions(cfg, logger)
	SubscribeMotion(opts, cfg, store, mirror, logger)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("Kritická chyba: Selhalo připojení k MQTT", "error", token.Error())
		os.Exit(1)
	}
	// Odpojení s timeoutem 250ms při ukončení
	defer client.Disconnect(250)

	// Od teď jdou logy i do MQTT.
	mqttWriter.AttachClient(client)

	// 7. HTTP server (read-only API)
	api := NewAPIHandler(store, aliases, logger)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	// Jednoduchý healthcheck pro Docker
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: CorsMiddleware(mux),
	}

	// Server běží ve vlastní goroutině - main čeká na signál ukončení.
	go func() {
		logger.Info("HTTP server naslouchá", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Kritická chyba: HTTP server spadl", "error", err)
			os.Exit(1)
		}
	}()

	// 8. Graceful Shutdown (čekání na SIGINT / SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Ukončuji službu...")

	// Nejdřív přestaneme přijímat HTTP, pak proběhnou defery (MQTT, Valkey).
	// Historie v paměti se restartem ZTRÁCÍ - to je vědomé rozhodnutí,
	// senzory ji za pár minut zase naplní.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Chyba při zastavování HTTP serveru", "error", err)
	}
}

// loadAliases vybere zdroj aliasů podle konfigurace.
func loadAliases(ctx context.Context, cfg Config, logger *slog.Logger) (map[string]string, error) {
	// Preferujeme Postgres, pokud je nakonfigurovaný.
	if cfg.PostgresURL != "" {
		logger.Info("Načítám aliasy z Postgresu")

		dbPool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		// Pool po načtení zavíráme - DB potřebujeme jen při startu,
		// za běhu se aliasy nemění.
		defer dbPool.Close()

		return LoadAliasesFromDB(ctx, dbPool)
	}

	return ParseAliasesJSON(cfg.AliasesJSON)
}

// parseLogLevel převede LOG_LEVEL z ENV na slog úroveň. Neznámá hodnota = info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
