package main

import (
	"sync"
	"time"
)

// ActivityStore je srdce celé služby: drží v paměti historii pohybů
// pro každý senzor zvlášť, omezenou na posledních N záznamů.
//
// POŽADAVKY NA SOUBĚŽNOST:
//   - Zapisuje MQTT callback (jedna goroutina od paho, ale nesmíme na to spoléhat).
//   - Čtou HTTP handlery (libovolný počet goroutin najednou).
//
// V Go "map" NENÍ thread-safe, takže mapu senzorů chráníme RWMutexem.
// Každý senzor má navíc VLASTNÍ zámek nad svým ring bufferem.
// DŮVOD: Zápis pro senzor A pak nikdy neblokuje čtení historie senzoru B.
// Globální zámek držíme jen na dobu vyhledání klíče v mapě (nanosekundy).
type ActivityStore struct {
	// capacity: maximální délka historie jednoho senzoru (HISTORY_LENGTH).
	// Nastavuje se jednou při startu a už se nemění.
	capacity int

	// mu chrání POUZE mapu sensors (přidání nového klíče vs. lookup).
	mu sync.RWMutex

	// Klíč mapy je ID senzoru (poslední segment MQTT topicu, např. "14693767").
	sensors map[string]*sensorHistory
}

// sensorHistory je ring buffer (kruhový buffer) s pevnou kapacitou.
//
// Původní naivní řešení by bylo: append + při přetečení odříznout začátek slice.
// To ale při každém přetečení kopíruje celé pole a "stará" data drží GC naživu.
// Ring buffer zapisuje stále dokola do stejného pole: vložení i vyhození
// nejstaršího záznamu je O(1) a nealokuje.
type sensorHistory struct {
	// mu chrání records/next/count. Držíme ho jen po dobu jednoho zápisu
	// nebo jednoho zkopírování historie ven (obojí omezeno kapacitou).
	mu sync.Mutex

	// records má délku přesně capacity, nikdy se nerealokuje.
	records []ActivityRecord

	// next: index, kam přijde příští zápis. Po zápisu se posune o 1 dokola (modulo).
	next int

	// count: kolik polí v records je už platných (roste do capacity a tam se zastaví).
	count int
}

// NewActivityStore vytvoří prázdný store.
// capacity musí být kladná - hlídá to už LoadConfig, ale pro jistotu
// tady spadneme na minimum 1, aby store nikdy nebyl nepoužitelný.
func NewActivityStore(capacity int) *ActivityStore {
	if capacity < 1 {
		capacity = 1
	}
	return &ActivityStore{
		capacity: capacity,
		sensors:  make(map[string]*sensorHistory),
	}
}

// Capacity vrací nakonfigurovanou délku okna (H).
func (s *ActivityStore) Capacity() int {
	return s.capacity
}

// Record zapíše novou aktivitu senzoru. Čas přijetí razítkujeme tady (UTC),
// takže volající řeší jen "co přišlo", ne "kdy".
//
// Nikdy nevrací chybu: hodnota je pro nás neprůhledný string a místo v bufferu
// je vždy (nejstarší záznam se prostě přepíše).
func (s *ActivityStore) Record(sensorID, value string) {
	h := s.historyFor(sensorID)

	rec := ActivityRecord{
		Value:      value,
		ReceivedAt: time.Now().UTC(),
	}

	// KRITICKÁ SEKCE: jen zápis jednoho prvku a posun indexu.
	// Žádné IO, žádná alokace - zámek držíme mikrosekundy.
	h.mu.Lock()
	h.records[h.next] = rec
	h.next = (h.next + 1) % s.capacity
	if h.count < s.capacity {
		h.count++
	}
	h.mu.Unlock()
}

// historyFor vrátí ring buffer pro daný senzor; pokud senzor vidíme poprvé,
// buffer založí. Typický případ (senzor už existuje) projde jen přes RLock,
// takže souběžné zápisy různých senzorů se navzájem nezdržují.
func (s *ActivityStore) historyFor(sensorID string) *sensorHistory {
	// Rychlá cesta: klíč už existuje.
	s.mu.RLock()
	h, ok := s.sensors[sensorID]
	s.mu.RUnlock()
	if ok {
		return h
	}

	// Pomalá cesta: nový senzor. Musíme vzít plný zámek.
	s.mu.Lock()
	defer s.mu.Unlock()

	// DOUBLE-CHECK: mezi RUnlock a Lock mohla klíč založit jiná goroutina
	// (dva první eventy stejného senzoru naráz). Bez této kontroly bychom
	// vytvořili druhý buffer a část historie by se ztratila.
	if h, ok := s.sensors[sensorID]; ok {
		return h
	}

	h = &sensorHistory{records: make([]ActivityRecord, s.capacity)}
	s.sensors[sensorID] = h
	return h
}

// SnapshotOne vrátí kopii historie jednoho senzoru, od nejnovějšího záznamu
// k nejstaršímu. Pro neznámý senzor vrací prázdný slice (NE nil a NE chybu) -
// API pak korektně odpoví "[]".
//
// Vracíme vždy čerstvou kopii: volající si s ní může dělat co chce
// a souběžné zápisy ji už nijak nezmění.
func (s *ActivityStore) SnapshotOne(sensorID string) []ActivityRecord {
	s.mu.RLock()
	h, ok := s.sensors[sensorID]
	s.mu.RUnlock()

	if !ok {
		return []ActivityRecord{}
	}
	return h.snapshot()
}

// SnapshotAll vrátí kopii celého store: mapa ID -> historie (nejnovější první).
//
// KONZISTENCE: každý senzor se kopíruje pod svým zámkem, takže jednotlivá
// historie nikdy není "roztržená" (napůl zapsaný záznam, délka přes limit).
// Mapu jako celek nefotíme pod jedním globálním zámkem - senzory mezi sebou
// mohou být posunuté o event, který dorazil během kopírování. To je v pořádku:
// zastavit kvůli tomu všechny zápisy by bylo zbytečně drahé.
func (s *ActivityStore) SnapshotAll() map[string][]ActivityRecord {
	// Nejdřív pod RLockem posbíráme jen reference na buffery...
	s.mu.RLock()
	refs := make(map[string]*sensorHistory, len(s.sensors))
	for id, h := range s.sensors {
		refs[id] = h
	}
	s.mu.RUnlock()

	// ...a kopírování obsahu už děláme BEZ globálního zámku,
	// aby nový senzor mohl mezitím v klidu vzniknout.
	out := make(map[string][]ActivityRecord, len(refs))
	for id, h := range refs {
		out[id] = h.snapshot()
	}
	return out
}

// snapshot zkopíruje obsah ring bufferu do nového slice, nejnovější první.
func (h *sensorHistory) snapshot() []ActivityRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]ActivityRecord, h.count)
	// Nejnovější záznam leží na pozici next-1, starší směrem dozadu (dokola).
	idx := h.next
	for i := 0; i < h.count; i++ {
		// +len(records) kvůli zápornému modulu v Go.
		idx = (idx - 1 + len(h.records)) % len(h.records)
		out[i] = h.records[idx]
	}
	return out
}
