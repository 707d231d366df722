package core

import (
	"testing"
	"time"

	"fleetcore/pkg/domain"
)

func TestStoreSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore()
	store.Replace(domain.DefaultSnapshot())

	snap := store.Snapshot()
	snap.Ships[0].Name = "Mutated"
	snap.Ships = append(snap.Ships, domain.Ship{ID: "sneaky"})

	again := store.Snapshot()
	if again.Ships[0].Name != "Ever Given" {
		t.Fatalf("snapshot mutation leaked into store: %s", again.Ships[0].Name)
	}
	if len(again.Ships) != 2 {
		t.Fatalf("appended ship leaked into store: %d ships", len(again.Ships))
	}
}

func TestStoreReplaceDetachesInput(t *testing.T) {
	store := NewStore()
	next := domain.DefaultSnapshot()
	store.Replace(next)

	next.Ships[0].Name = "Mutated after replace"
	if store.Snapshot().Ships[0].Name != "Ever Given" {
		t.Fatal("Replace must clone its input")
	}
}

func TestNewIDUniqueUnderFixedClock(t *testing.T) {
	store := NewStore()
	frozen := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return frozen }

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
