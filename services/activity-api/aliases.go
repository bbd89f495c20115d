package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AliasResolver překládá surová ID senzorů (např. "14693767") na lidsky
// čitelné názvy (např. "lounge"). Čistě prezentační záležitost - store
// o aliasech nic neví a pracuje jen s ID.
//
// Mapa je po startu NEMĚNNÁ, takže ji můžeme číst z libovolného počtu
// goroutin bez zámku. Změna aliasů = restart služby (vědomé rozhodnutí,
// aliasy se mění jednou za uherský rok).
type AliasResolver struct {
	aliases map[string]string

	// reverse: název -> ID. Umožňuje API přijmout v URL i alias
	// (dashboard zobrazuje názvy, tak ať se jimi dá i ptát).
	reverse map[string]string
}

// NewAliasResolver vytvoří resolver nad hotovou mapou ID -> alias.
// Mapu si zkopíruje, aby s ní volající nemohl později hýbat.
func NewAliasResolver(aliases map[string]string) *AliasResolver {
	r := &AliasResolver{
		aliases: make(map[string]string, len(aliases)),
		reverse: make(map[string]string, len(aliases)),
	}
	for id, alias := range aliases {
		r.aliases[id] = alias
		r.reverse[alias] = id
	}
	return r
}

// Resolve vrátí alias pro dané ID. Pokud alias neexistuje, vrací ID beze změny.
// DŮVOD: API pak vždy něco zobrazí a klient nemusí ošetřovat null
// (původní verze vracela null a každý frontend si fallback řešil sám).
func (r *AliasResolver) Resolve(sensorID string) string {
	if alias, ok := r.aliases[sensorID]; ok {
		return alias
	}
	return sensorID
}

// ReverseLookup vrátí ID senzoru pro daný alias, pokud takový alias existuje.
func (r *AliasResolver) ReverseLookup(alias string) (string, bool) {
	id, ok := r.reverse[alias]
	return id, ok
}

// ParseAliasesJSON načte mapu aliasů z ENV proměnné ALIASES.
// Očekávaný formát: {"14693767": "isel", "91150": "robo"}.
// Prázdný vstup je v pořádku (žádné aliasy, všude se zobrazí surová ID).
func ParseAliasesJSON(raw string) (map[string]string, error) {
	aliases := make(map[string]string)
	if raw == "" {
		return aliases, nil
	}
	if err := json.Unmarshal([]byte(raw), &aliases); err != nil {
		return nil, fmt.Errorf("ALIASES není platný JSON objekt string->string: %w", err)
	}
	return aliases, nil
}

// LoadAliasesFromDB načte aliasy z Postgresu (tabulka sensor_aliases).
// Volá se JEDNOU při startu - žádný auto-refresh, mapa zůstává neměnná.
// Hodí se, když aliasy spravuje víc lidí a ENV proměnná už nestačí.
func LoadAliasesFromDB(ctx context.Context, db *pgxpool.Pool) (map[string]string, error) {
	query := `
		SELECT sensor_id, alias
		FROM sensor_aliases
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SQL dotaz na aliasy selhal: %w", err)
	}
	defer rows.Close() // Vždy zavřít rows, jinak držíme spojení z poolu

	aliases := make(map[string]string)
	for rows.Next() {
		var id, alias string
		if err := rows.Scan(&id, &alias); err != nil {
			return nil, fmt.Errorf("chyba čtení řádku aliasů: %w", err)
		}
		aliases[id] = alias
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chyba při iteraci aliasů: %w", err)
	}

	return aliases, nil
}
