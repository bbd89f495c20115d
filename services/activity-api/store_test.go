package main

import (
	"fmt"
	"sync"
	"testing"
)

// Pomocná funkce: zapíše do store hodnoty v1..vn pro daný senzor.
func recordN(store *ActivityStore, sensorID string, n int) {
	for i := 1; i <= n; i++ {
		store.Record(sensorID, fmt.Sprintf("v%d", i))
	}
}

func TestRecordNeverExceedsCapacity(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 10} {
		store := NewActivityStore(capacity)
		for i := 1; i <= 25; i++ {
			store.Record("sensor", fmt.Sprintf("v%d", i))
			if got := len(store.SnapshotOne("sensor")); got > capacity {
				t.Fatalf("kapacita %d: po %d zápisech má historie délku %d", capacity, i, got)
			}
		}
	}
}

func TestWindowKeepsNewestFirst(t *testing.T) {
	store := NewActivityStore(5)
	recordN(store, "sensor", 12)

	got := store.SnapshotOne("sensor")
	want := []string{"v12", "v11", "v10", "v9", "v8"}

	if len(got) != len(want) {
		t.Fatalf("očekávána délka %d, dostal jsem %d", len(want), len(got))
	}
	for i, rec := range got {
		if rec.Value != want[i] {
			t.Errorf("pozice %d: očekáváno %s, dostal jsem %s", i, want[i], rec.Value)
		}
		if rec.ReceivedAt.IsZero() {
			t.Errorf("pozice %d: chybí časové razítko", i)
		}
	}
}

func TestOrderBeforeOverflow(t *testing.T) {
	store := NewActivityStore(10)
	recordN(store, "sensor", 3)

	got := store.SnapshotOne("sensor")
	want := []string{"v3", "v2", "v1"}

	if len(got) != 3 {
		t.Fatalf("očekávány 3 záznamy, dostal jsem %d", len(got))
	}
	for i, rec := range got {
		if rec.Value != want[i] {
			t.Errorf("pozice %d: očekáváno %s, dostal jsem %s", i, want[i], rec.Value)
		}
	}
}

// Scénář ze zadání služby: H=2, zápisy A, B, C -> historie [C, B].
func TestOldestDroppedOnOverflow(t *testing.T) {
	store := NewActivityStore(2)
	store.Record("123456", "A")
	store.Record("123456", "B")
	store.Record("123456", "C")

	got := store.SnapshotOne("123456")
	if len(got) != 2 || got[0].Value != "C" || got[1].Value != "B" {
		t.Fatalf("očekáváno [C B], dostal jsem %+v", got)
	}
}

func TestSnapshotUnknownSensorIsEmptyNotNil(t *testing.T) {
	store := NewActivityStore(10)

	got := store.SnapshotOne("999999")
	if got == nil {
		t.Fatal("snapshot neznámého senzoru nesmí být nil (API by vrátilo null místo [])")
	}
	if len(got) != 0 {
		t.Fatalf("snapshot neznámého senzoru má být prázdný, dostal jsem %d záznamů", len(got))
	}
}

// Snapshot je kopie: úprava vráceného slice nesmí ovlivnit store.
func TestSnapshotIsIndependentCopy(t *testing.T) {
	store := NewActivityStore(5)
	recordN(store, "sensor", 3)

	first := store.SnapshotOne("sensor")
	first[0].Value = "poškozeno"

	second := store.SnapshotOne("sensor")
	if second[0].Value != "v3" {
		t.Fatalf("úprava snapshotu prosákla do store: %s", second[0].Value)
	}
}

// Souběžné zápisy RŮZNÝCH senzorů se nesmí nijak ovlivnit: výsledek každého
// senzoru musí odpovídat sekvenčnímu zápisu jeho vlastních hodnot.
func TestConcurrentWritesDistinctSensors(t *testing.T) {
	const (
		sensors  = 8
		writes   = 100
		capacity = 10
	)
	store := NewActivityStore(capacity)

	var wg sync.WaitGroup
	for s := 0; s < sensors; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			id := fmt.Sprintf("sensor-%d", s)
			for i := 1; i <= writes; i++ {
				store.Record(id, fmt.Sprintf("s%d-v%d", s, i))
			}
		}(s)
	}
	wg.Wait()

	for s := 0; s < sensors; s++ {
		id := fmt.Sprintf("sensor-%d", s)
		got := store.SnapshotOne(id)
		if len(got) != capacity {
			t.Fatalf("%s: očekávána délka %d, dostal jsem %d", id, capacity, len(got))
		}
		// Nejnovější první: v100, v99, ... v91
		for i, rec := range got {
			want := fmt.Sprintf("s%d-v%d", s, writes-i)
			if rec.Value != want {
				t.Errorf("%s pozice %d: očekáváno %s, dostal jsem %s", id, i, want, rec.Value)
			}
		}
	}
}

// Souběžné zápisy STEJNÉHO senzoru + souběžné snapshoty: historie nikdy
// nesmí přerůst kapacitu a žádný snapshot nesmí obsahovat "roztržený"
// záznam (prázdná hodnota / nulový čas). Pouštět s -race.
func TestConcurrentWritesSameSensor(t *testing.T) {
	const (
		writers  = 8
		writes   = 200
		capacity = 10
	)
	store := NewActivityStore(capacity)

	done := make(chan struct{})
	var readerWg sync.WaitGroup

	// Čtenář fotí snapshoty uprostřed zápisů a kontroluje invarianty.
	readerWg.Add(1)
	go func() {
		defer readerWg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			snap := store.SnapshotOne("sensor")
			if len(snap) > capacity {
				t.Errorf("snapshot delší než kapacita: %d > %d", len(snap), capacity)
				return
			}
			for _, rec := range snap {
				if rec.Value == "" || rec.ReceivedAt.IsZero() {
					t.Errorf("roztržený záznam ve snapshotu: %+v", rec)
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				store.Record("sensor", fmt.Sprintf("w%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()
	close(done)
	readerWg.Wait()

	if got := len(store.SnapshotOne("sensor")); got != capacity {
		t.Fatalf("po %d zápisech očekávána plná historie %d, dostal jsem %d",
			writers*writes, capacity, got)
	}
}

// Dvě goroutiny zapisující jako PRVNÍ stejný nový senzor nesmí založit
// dva buffery (ztratila by se část historie).
func TestConcurrentFirstWriteSameSensor(t *testing.T) {
	for run := 0; run < 50; run++ {
		store := NewActivityStore(10)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for w := 0; w < 2; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				<-start
				store.Record("fresh", fmt.Sprintf("w%d", w))
			}(w)
		}
		close(start)
		wg.Wait()

		if got := len(store.SnapshotOne("fresh")); got != 2 {
			t.Fatalf("běh %d: očekávány 2 záznamy, dostal jsem %d (duplicitní buffer?)", run, got)
		}
	}
}

func TestSnapshotAllContainsEverySensor(t *testing.T) {
	store := NewActivityStore(3)
	recordN(store, "a", 5)
	recordN(store, "b", 1)

	snap := store.SnapshotAll()
	if len(snap) != 2 {
		t.Fatalf("očekávány 2 senzory, dostal jsem %d", len(snap))
	}
	if len(snap["a"]) != 3 || snap["a"][0].Value != "v5" {
		t.Errorf("senzor a: očekáváno [v5 v4 v3], dostal jsem %+v", snap["a"])
	}
	if len(snap["b"]) != 1 || snap["b"][0].Value != "v1" {
		t.Errorf("senzor b: očekáváno [v1], dostal jsem %+v", snap["b"])
	}
}
