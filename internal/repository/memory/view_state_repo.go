package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

type viewStateEntry struct {
	state     domain.ViewState
	expiresAt time.Time
}

// ViewStateRepo хранит фильтры сессий в памяти процесса. Используется, когда Redis не настроен.
// Истекшие записи удаляются при чтении, периодическим Sweep и не чаще раза в ttl при Save.
type ViewStateRepo struct {
	mu        sync.Mutex
	states    map[string]viewStateEntry
	ttl       time.Duration
	now       func() time.Time
	lastPurge time.Time
}

func NewViewStateRepo(ttl time.Duration) *ViewStateRepo {
	return &ViewStateRepo{
		states:    make(map[string]viewStateEntry),
		ttl:       ttl,
		now:       time.Now,
		lastPurge: time.Now(),
	}
}

func (v *ViewStateRepo) Get(_ context.Context, sessionID string) (*domain.ViewState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.states[sessionID]
	if !ok {
		return nil, e.ErrSessionNotFound
	}
	if v.now().After(entry.expiresAt) {
		delete(v.states, sessionID)
		return nil, e.ErrSessionNotFound
	}

	entry.expiresAt = v.now().Add(v.ttl)
	v.states[sessionID] = entry
	state := entry.state

	return &state, nil
}

func (v *ViewStateRepo) Save(_ context.Context, sessionID string, state *domain.ViewState) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	if now.Sub(v.lastPurge) >= v.ttl {
		v.purge(now)
	}

	v.states[sessionID] = viewStateEntry{
		state:     *state,
		expiresAt: now.Add(v.ttl),
	}

	return nil
}

func (v *ViewStateRepo) Delete(_ context.Context, sessionID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.states, sessionID)
	return nil
}

// Sweep удаляет истекшие записи и возвращает их число.
func (v *ViewStateRepo) Sweep() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.purge(v.now())
}

func (v *ViewStateRepo) purge(now time.Time) int {
	removed := 0
	for id, entry := range v.states {
		if now.After(entry.expiresAt) {
			delete(v.states, id)
			removed++
		}
	}
	v.lastPurge = now

	return removed
}
