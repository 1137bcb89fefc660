package usecase

import (
	"context"

	"github.com/DRSN-tech/production-admin/internal/domain"
)

// ViewStateRepository хранит активные фильтры сессии.
// Get возвращает e.ErrSessionNotFound, если состояние не сохранялось или истекло.
type ViewStateRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.ViewState, error)
	Save(ctx context.Context, sessionID string, state *domain.ViewState) error
	Delete(ctx context.Context, sessionID string) error
}

// ViewStateSweeper реализуется хранилищами без собственного истечения записей.
type ViewStateSweeper interface {
	Sweep() int
}

type ReportRepository interface {
	Upload(ctx context.Context, report *domain.Report) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}
