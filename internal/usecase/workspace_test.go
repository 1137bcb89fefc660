package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

func newTestAPI() InventoryAPI {
	return InventoryAPI{
		Products:            &fakeProductAPI{listResult: productPage(0, 10, 0)},
		RawMaterials:        &fakeRawMaterialAPI{},
		ProductRawMaterials: &fakeAssociationAPI{byProduct: map[int64][]domain.ProductRawMaterial{}},
		Suggestions:         &fakeSuggestionAPI{},
	}
}

func TestRegistryReturnsSameWorkspace(t *testing.T) {
	registry := NewWorkspaceRegistry(newTestAPI(), newMemoryViewStates(), time.Minute, logger.NewNopLogger())

	first := registry.Get(context.Background(), "s1")
	second := registry.Get(context.Background(), "s1")
	other := registry.Get(context.Background(), "s2")

	if first != second {
		t.Fatalf("expected the same workspace for one session")
	}
	if first == other {
		t.Fatalf("sessions must not share workspaces")
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 workspaces, got %d", registry.Len())
	}
}

func TestRegistryRestoresFilters(t *testing.T) {
	viewStates := newMemoryViewStates()
	registry := NewWorkspaceRegistry(newTestAPI(), viewStates, time.Minute, logger.NewNopLogger())

	ws := registry.Get(context.Background(), "s1")
	ws.Products.Fetch(context.Background(), 0, 10, domain.ListFilter{Search: "bolt", SortBy: "name", SortDirection: domain.SortDesc})
	ws.Suggestions.SetSearchName(context.Background(), "chair")
	registry.Remember(context.Background(), ws)

	registry.now = func() time.Time { return time.Now().Add(time.Hour) }
	if evicted := registry.Sweep(); evicted != 1 {
		t.Fatalf("expected idle workspace to be evicted, got %d", evicted)
	}

	restored := registry.Get(context.Background(), "s1")
	if restored == ws {
		t.Fatalf("expected a fresh workspace after eviction")
	}
	if got := restored.Products.State().Filter; got.Search != "bolt" || got.SortDirection != domain.SortDesc {
		t.Fatalf("product filter not restored: %+v", got)
	}
	if got := restored.Suggestions.State().Filter.SearchName; got != "chair" {
		t.Fatalf("suggestion filter not restored: %q", got)
	}
	if page := restored.Products.State().Page; page.CurrentPage != 0 {
		t.Fatalf("page numbers must not be restored: %+v", page)
	}
}

func TestRegistryIgnoresViewStateFailure(t *testing.T) {
	viewStates := newMemoryViewStates()
	viewStates.failGet = errors.New("redis: connection refused")
	registry := NewWorkspaceRegistry(newTestAPI(), viewStates, time.Minute, logger.NewNopLogger())

	ws := registry.Get(context.Background(), "s1")
	if ws == nil || ws.Products.State().Filter != domain.NewListFilter() {
		t.Fatalf("expected default workspace when view state is unavailable")
	}
}

func TestRegistryKeepsActiveWorkspaces(t *testing.T) {
	registry := NewWorkspaceRegistry(newTestAPI(), newMemoryViewStates(), time.Minute, logger.NewNopLogger())
	registry.Get(context.Background(), "s1")

	if evicted := registry.Sweep(); evicted != 0 {
		t.Fatalf("active workspace must not be evicted, got %d", evicted)
	}
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	registry := NewWorkspaceRegistry(newTestAPI(), newMemoryViewStates(), time.Minute, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		registry.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("janitor did not stop after cancel")
	}
}

func TestRegistryRunSweepsViewStates(t *testing.T) {
	viewStates := newMemoryViewStates()
	registry := NewWorkspaceRegistry(newTestAPI(), viewStates, time.Minute, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx, time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for viewStates.sweepCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("janitor never swept view states")
		}
		time.Sleep(time.Millisecond)
	}
}
