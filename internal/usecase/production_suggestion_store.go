package usecase

import (
	"context"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

const msgFetchSuggestions = "Failed to load production suggestions"

// ProductionSuggestionStore - store отчета с рекомендациями по выпуску. Только чтение.
// Сеттеры меняют одно поле до завершения выборки и сразу запускают ровно одну выборку.
type ProductionSuggestionStore struct {
	store  *pagedStore[domain.ProductionSuggestion, domain.SuggestionFilter]
	api    ProductionSuggestionAPI
	logger logger.Logger
}

func NewProductionSuggestionStore(api ProductionSuggestionAPI, logger logger.Logger) *ProductionSuggestionStore {
	return &ProductionSuggestionStore{
		store:  newPagedStore[domain.ProductionSuggestion](domain.SuggestionFilter{}, logger),
		api:    api,
		logger: logger,
	}
}

func (p *ProductionSuggestionStore) Fetch(ctx context.Context, page, size int, filter domain.SuggestionFilter) {
	const op = "ProductionSuggestionStore.Fetch"

	p.store.fetch(ctx, op, msgFetchSuggestions, filter, func(ctx context.Context) (*domain.Page[domain.ProductionSuggestion], error) {
		return p.api.List(ctx, domain.NewSuggestionQuery(page, size, filter))
	})
}

func (p *ProductionSuggestionStore) Refresh(ctx context.Context) {
	page, size, filter := p.store.cursor()
	p.Fetch(ctx, page, size, filter)
}

// SetPage переходит на страницу page; фильтры и размер страницы сохраняются.
func (p *ProductionSuggestionStore) SetPage(ctx context.Context, page int) {
	p.fetchMoved(ctx, func(info *domain.PageInfo, _ *domain.SuggestionFilter) {
		info.CurrentPage = page
	})
}

func (p *ProductionSuggestionStore) SetPageSize(ctx context.Context, size int) {
	p.fetchMoved(ctx, func(info *domain.PageInfo, _ *domain.SuggestionFilter) {
		info.PageSize = size
		info.CurrentPage = 0
	})
}

func (p *ProductionSuggestionStore) SetSearchName(ctx context.Context, name string) {
	p.fetchMoved(ctx, func(info *domain.PageInfo, filter *domain.SuggestionFilter) {
		filter.SearchName = name
		info.CurrentPage = 0
	})
}

func (p *ProductionSuggestionStore) SetSortDirection(ctx context.Context, direction string) {
	p.fetchMoved(ctx, func(info *domain.PageInfo, filter *domain.SuggestionFilter) {
		filter.SortDirection = direction
		info.CurrentPage = 0
	})
}

func (p *ProductionSuggestionStore) fetchMoved(ctx context.Context, change func(info *domain.PageInfo, filter *domain.SuggestionFilter)) {
	page, size, filter := p.store.move(change)
	p.Fetch(ctx, page, size, filter)
}

func (p *ProductionSuggestionStore) Filter() domain.SuggestionFilter {
	return p.store.currentFilter()
}

// RestoreFilter выставляет активный фильтр без выборки.
func (p *ProductionSuggestionStore) RestoreFilter(filter domain.SuggestionFilter) {
	p.store.setFilter(filter)
}

func (p *ProductionSuggestionStore) State() ProductionSuggestionState {
	return p.store.state()
}
