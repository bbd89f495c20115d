package main

import "time"

// ActivityRecord je jeden zaznamenaný pohyb.
// Struktura je po vytvoření neměnná - store ji kopíruje hodnotou.
type ActivityRecord struct {
	// Value: payload zprávy tak, jak přišel ze senzoru (typicky "1").
	// Pro nás je to neprůhledný string - neinterpretujeme ho.
	Value string `json:"value"`

	// ReceivedAt: čas PŘIJETÍ zprávy službou, vždy v UTC.
	// Senzory vlastní hodiny nemají, takže čas razítkuje server.
	// JSON serializace dá ISO8601 / RFC3339, stejně jako původní Python verze.
	ReceivedAt time.Time `json:"receivedAt"`
}
