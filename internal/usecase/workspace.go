package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

// Workspace - набор store одной сессии браузера.
type Workspace struct {
	SessionID           string
	Products            *ProductStore
	RawMaterials        *RawMaterialStore
	ProductRawMaterials *ProductRawMaterialStore
	Suggestions         *ProductionSuggestionStore

	mu       sync.Mutex
	lastSeen time.Time
}

func NewWorkspace(sessionID string, api InventoryAPI, logger logger.Logger) *Workspace {
	return &Workspace{
		SessionID:           sessionID,
		Products:            NewProductStore(api.Products, logger),
		RawMaterials:        NewRawMaterialStore(api.RawMaterials, logger),
		ProductRawMaterials: NewProductRawMaterialStore(api.ProductRawMaterials, logger),
		Suggestions:         NewProductionSuggestionStore(api.Suggestions, logger),
		lastSeen:            time.Now(),
	}
}

// ViewState возвращает активные фильтры списков.
func (w *Workspace) ViewState() *domain.ViewState {
	return &domain.ViewState{
		Products:     w.Products.Filter(),
		RawMaterials: w.RawMaterials.Filter(),
		Suggestions:  w.Suggestions.Filter(),
	}
}

// Restore выставляет сохраненные фильтры. Номера страниц не восстанавливаются.
func (w *Workspace) Restore(state *domain.ViewState) {
	w.Products.RestoreFilter(state.Products)
	w.RawMaterials.RestoreFilter(state.RawMaterials)
	w.Suggestions.RestoreFilter(state.Suggestions)
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastSeen = now
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	return now.Sub(w.lastSeen)
}

// WorkspaceRegistry хранит рабочие пространства по ID сессии и вытесняет простаивающие.
type WorkspaceRegistry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	api        InventoryAPI
	viewStates ViewStateRepository
	idleTTL    time.Duration
	logger     logger.Logger
	now        func() time.Time
}

func NewWorkspaceRegistry(api InventoryAPI, viewStates ViewStateRepository, idleTTL time.Duration, logger logger.Logger) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		workspaces: make(map[string]*Workspace),
		api:        api,
		viewStates: viewStates,
		idleTTL:    idleTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Get возвращает рабочее пространство сессии, создавая его при первом обращении.
// Новое пространство получает фильтры, сохраненные в ViewStateRepository.
func (r *WorkspaceRegistry) Get(ctx context.Context, sessionID string) *Workspace {
	const op = "WorkspaceRegistry.Get"

	now := r.now()

	r.mu.Lock()
	ws, ok := r.workspaces[sessionID]
	r.mu.Unlock()
	if ok {
		ws.touch(now)
		return ws
	}

	created := NewWorkspace(sessionID, r.api, r.logger)
	state, err := r.viewStates.Get(ctx, sessionID)
	switch {
	case err == nil:
		created.Restore(state)
	case errors.Is(err, e.ErrSessionNotFound):
	default:
		r.logger.Warnf("failed to restore view state, session_id=%s: %v", sessionID, e.Wrap(op, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пространство могло появиться, пока читалось сохраненное состояние.
	if ws, ok := r.workspaces[sessionID]; ok {
		ws.touch(now)
		return ws
	}

	created.touch(now)
	r.workspaces[sessionID] = created
	r.logger.Debugf("workspace created, session_id=%s", sessionID)

	return created
}

// Remember сохраняет активные фильтры пространства. Ошибки только логируются.
func (r *WorkspaceRegistry) Remember(ctx context.Context, ws *Workspace) {
	const op = "WorkspaceRegistry.Remember"

	if err := r.viewStates.Save(ctx, ws.SessionID, ws.ViewState()); err != nil {
		r.logger.Warnf("failed to save view state, session_id=%s: %v", ws.SessionID, e.Wrap(op, err))
	}
}

// Sweep удаляет пространства, простаивающие дольше idleTTL, и возвращает их число.
// Сохраненные фильтры остаются в репозитории до истечения собственного TTL.
func (r *WorkspaceRegistry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, ws := range r.workspaces {
		if ws.idleSince(now) > r.idleTTL {
			delete(r.workspaces, id)
			evicted++
		}
	}

	return evicted
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.workspaces)
}

// Run периодически вытесняет простаивающие пространства до отмены ctx.
// Если репозиторий фильтров реализует ViewStateSweeper, из него удаляются истекшие записи.
func (r *WorkspaceRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Infof("Workspace janitor stopped")
			return
		case <-ticker.C:
			if evicted := r.Sweep(); evicted > 0 {
				r.logger.Debugf("evicted %d idle workspaces", evicted)
			}
			if sweeper, ok := r.viewStates.(ViewStateSweeper); ok {
				if removed := sweeper.Sweep(); removed > 0 {
					r.logger.Debugf("removed %d expired view states", removed)
				}
			}
		}
	}
}
