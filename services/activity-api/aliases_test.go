package main

import "testing"

func TestResolveKnownAlias(t *testing.T) {
	r := NewAliasResolver(map[string]string{"14693767": "isel", "91150": "robo"})

	if got := r.Resolve("14693767"); got != "isel" {
		t.Errorf("očekáváno 'isel', dostal jsem '%s'", got)
	}
}

// Neznámé ID se vrací beze změny (identity fallback), nikdy prázdno/null.
func TestResolveUnknownFallsBackToID(t *testing.T) {
	r := NewAliasResolver(map[string]string{"14693767": "isel"})

	if got := r.Resolve("999999"); got != "999999" {
		t.Errorf("očekáváno '999999', dostal jsem '%s'", got)
	}
}

func TestReverseLookup(t *testing.T) {
	r := NewAliasResolver(map[string]string{"123456": "Hallway"})

	id, ok := r.ReverseLookup("Hallway")
	if !ok || id != "123456" {
		t.Errorf("očekáváno ('123456', true), dostal jsem ('%s', %v)", id, ok)
	}

	if _, ok := r.ReverseLookup("neexistuje"); ok {
		t.Error("reverse lookup neznámého aliasu nemá nic najít")
	}
}

// Resolver si mapu kopíruje - pozdější úprava vstupní mapy se ho netýká.
func TestResolverIsImmutable(t *testing.T) {
	source := map[string]string{"1": "jedna"}
	r := NewAliasResolver(source)

	source["1"] = "změněno"
	source["2"] = "dva"

	if got := r.Resolve("1"); got != "jedna" {
		t.Errorf("resolver nemá vidět pozdější změny vstupní mapy, dostal jsem '%s'", got)
	}
	if got := r.Resolve("2"); got != "2" {
		t.Errorf("resolver nemá vidět nově přidané klíče, dostal jsem '%s'", got)
	}
}

func TestParseAliasesJSON(t *testing.T) {
	aliases, err := ParseAliasesJSON(`{"14693767": "isel", "91150": "robo"}`)
	if err != nil {
		t.Fatalf("neočekávaná chyba: %v", err)
	}
	if len(aliases) != 2 || aliases["91150"] != "robo" {
		t.Errorf("špatně naparsované aliasy: %+v", aliases)
	}
}

func TestParseAliasesJSONEmpty(t *testing.T) {
	aliases, err := ParseAliasesJSON("")
	if err != nil {
		t.Fatalf("prázdný vstup má být v pořádku, dostal jsem: %v", err)
	}
	if len(aliases) != 0 {
		t.Errorf("očekávána prázdná mapa, dostal jsem %+v", aliases)
	}
}

func TestParseAliasesJSONInvalid(t *testing.T) {
	if _, err := ParseAliasesJSON("tohle není json"); err == nil {
		t.Error("rozbitý JSON má vrátit chybu")
	}
}
