package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

func TestViewStateRepoRoundTrip(t *testing.T) {
	repo := NewViewStateRepo(time.Minute)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	state := domain.NewViewState()
	state.Products.Search = "bolt"
	if err := repo.Save(ctx, "s1", state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state.Products.Search = "changed after save"
	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Products.Search != "bolt" {
		t.Fatalf("stored state must not alias the caller's value, got %q", got.Products.Search)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestViewStateRepoExpires(t *testing.T) {
	repo := NewViewStateRepo(time.Minute)
	if err := repo.Save(context.Background(), "s1", domain.NewViewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := repo.Get(context.Background(), "s1"); !errors.Is(err, e.ErrSessionNotFound) {
		t.Fatalf("expected expired state to be gone, got %v", err)
	}
}

func TestViewStateRepoSavePurgesAbandonedSessions(t *testing.T) {
	repo := NewViewStateRepo(time.Hour)
	start := time.Now()
	repo.now = func() time.Time { return start }

	for i := range 1000 {
		if err := repo.Save(context.Background(), fmt.Sprintf("s%d", i), domain.NewViewState()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	repo.now = func() time.Time { return start.Add(24 * time.Hour) }
	if err := repo.Save(context.Background(), "fresh", domain.NewViewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.states) != 1 {
		t.Fatalf("expected only the fresh session to remain, got %d entries", len(repo.states))
	}
}

func TestViewStateRepoSweep(t *testing.T) {
	repo := NewViewStateRepo(time.Minute)
	start := time.Now()
	repo.now = func() time.Time { return start }

	for _, id := range []string{"s1", "s2"} {
		if err := repo.Save(context.Background(), id, domain.NewViewState()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	repo.now = func() time.Time { return start.Add(30 * time.Second) }
	if _, err := repo.Get(context.Background(), "s2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.now = func() time.Time { return start.Add(75 * time.Second) }
	if removed := repo.Sweep(); removed != 1 {
		t.Fatalf("expected one expired entry, got %d", removed)
	}
	if _, err := repo.Get(context.Background(), "s2"); err != nil {
		t.Fatalf("recently read session must survive sweep: %v", err)
	}
}
