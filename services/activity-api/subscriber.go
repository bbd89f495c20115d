package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Tento soubor řeší MQTT stranu služby: připojení k brokeru, odběr
// motion topiců a předání každé zprávy do ActivityStore.
//
// DŮLEŽITÉ ROZDĚLENÍ: samotné zpracování zprávy (DecodeMotionMessage) je
// čistá funkce bez MQTT závislostí, takže ji lze testovat bez brokera.
// Paho volá handlery pro jeden topic sériově v pořadí doručení (order=true
// je default), takže pořadí eventů jednoho senzoru se do store přenese 1:1.

// DecodeMotionMessage vytáhne ze zprávy ID senzoru a hodnotu.
//
// Topic vypadá takto: /iot/cave/motion0/14693767
//   - poslední segment je ID senzoru.
//
// Payload je pro nás neprůhledná hodnota (senzory posílají typicky "1").
// Prázdný payload bereme jako holý "ping" a ukládáme "1", aby v historii
// nebyly prázdné stringy.
func DecodeMotionMessage(topic string, payload []byte) (sensorID, value string, err error) {
	parts := strings.Split(topic, "/")
	sensorID = parts[len(parts)-1]
	if sensorID == "" {
		// Topic končí lomítkem nebo je úplně prázdný - nemáme klíč,
		// pod který bychom aktivitu uložili. Zahazujeme.
		return "", "", fmt.Errorf("topic '%s' neobsahuje ID senzoru", topic)
	}

	value = strings.TrimSpace(string(payload))
	if value == "" {
		value = "1"
	}
	return sensorID, value, nil
}

// NewSubscriberOptions sestaví paho konfiguraci pro naše použití.
func NewSubscriberOptions(cfg Config, logger *slog.Logger) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID)

	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	// Keepalive 5s - stejně agresivní jako původní verze. Senzory hlásí
	// pohyb nepravidelně, takže chceme výpadek spojení poznat rychle.
	opts.SetKeepAlive(5 * time.Second)

	// AutoReconnect: paho se po výpadku sám připojí znovu. Reconnect běží
	// v goroutině klienta - store ani HTTP vrstvu nijak neblokuje,
	// API dál servíruje poslední známou historii.
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(1 * time.Minute)

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("Spojení s MQTT brokerem ztraceno, čekám na reconnect", "error", err)
	})

	return opts
}

// SubscribeMotion zaregistruje odběr motion topiců.
//
// Subscribe se věší do OnConnect handleru. DŮVOD: po auto-reconnectu musí
// klient odběr zaregistrovat ZNOVU (bez persistent session si ho broker
// nepamatuje). OnConnect se zavolá při každém (re)connectu, takže odběr
// přežije i restart brokera.
func SubscribeMotion(opts *mqtt.ClientOptions, cfg Config, store *ActivityStore, mirror *LiveMirror, logger *slog.Logger) {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		sensorID, value, err := DecodeMotionMessage(msg.Topic(), msg.Payload())
		if err != nil {
			// Rozbitou zprávu logujeme a zahodíme. Služba jede dál,
			// do store se nikdy nedostane nic nedekódovatelného.
			logger.Warn("Zpráva odmítnuta", "topic", msg.Topic(), "error", err)
			return
		}

		// Zápis do paměti - synchronní, bez IO, nikdy neselže.
		store.Record(sensorID, value)
		logger.Debug("Zaznamenána aktivita", "sensor", sensorID)

		// Volitelné zrcadlení poslední hodnoty do Valkey.
		// Chyba zrcadla NESMÍ shodit zpracování - historie v paměti je
		// zapsaná, zrcadlo je jen bonus pro ostatní služby.
		if mirror != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := mirror.Publish(ctx, sensorID, value); err != nil {
				logger.Error("Zrcadlení do Valkey selhalo", "sensor", sensorID, "error", err)
			}
		}
	}

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("Připojeno k MQTT, registruji odběr", "topic", cfg.MotionTopic)
		if token := client.Subscribe(cfg.MotionTopic, 0, handler); token.Wait() && token.Error() != nil {
			// Nepodařený subscribe po reconnectu je vážný stav, ale proces
			// nezabíjíme - HTTP strana pořád servíruje poslední data
			// a příští reconnect to zkusí znovu.
			logger.Error("Subscribe selhal", "topic", cfg.MotionTopic, "error", token.Error())
		}
	})
}
