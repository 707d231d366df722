package memory

import (
	"context"
	"testing"

	"fleetcore/internal/infra/persistence/state"
	"fleetcore/pkg/domain"
)

func TestLoadEmptyReturnsSeed(t *testing.T) {
	store := NewStore()
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Ships) != 2 || len(snap.Users) != 3 {
		t.Fatalf("expected seed, got %d ships, %d users", len(snap.Ships), len(snap.Users))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	snap := domain.DefaultSnapshot()
	snap.Ships = append(snap.Ships, domain.Ship{
		ID: "s3", Name: "Calypso", IMO: "7654321", Flag: "France", Status: domain.ShipStatusActive,
	})
	snap.Authenticated = true
	id := "1"
	snap.CurrentUserID = &id

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Ships) != 3 {
		t.Fatalf("expected 3 ships, got %d", len(loaded.Ships))
	}
	if !loaded.Authenticated || loaded.CurrentUserID == nil || *loaded.CurrentUserID != "1" {
		t.Fatalf("session lost: %+v", loaded)
	}
	job, ok := loaded.FindJob("j1")
	if !ok || !job.ScheduledDate.Equal(domain.NewDate(2025, 5, 5)) {
		t.Fatalf("job corrupted: %+v", job)
	}
}

func TestCorruptBucketFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	if err := store.Save(ctx, domain.DefaultSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.PutBucket(state.BucketShips, []byte(`{definitely not json`))

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Ships) != 2 || snap.Ships[0].ID != "s1" {
		t.Fatalf("expected seed fallback, got %+v", snap.Ships)
	}
}
