package inventory_api

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

const suggestionsPath = "/production-suggestions"

// ProductionSuggestionClient - клиент отчета /production-suggestions, только чтение.
type ProductionSuggestionClient struct {
	client *Client
}

func NewProductionSuggestionClient(client *Client) *ProductionSuggestionClient {
	return &ProductionSuggestionClient{client: client}
}

func (p *ProductionSuggestionClient) List(ctx context.Context, q domain.SuggestionQuery) (*domain.Page[domain.ProductionSuggestion], error) {
	const op = "ProductionSuggestionClient.List"

	query := pageQuery(q.Page, q.Size,
		"searchName", q.Filter.SearchName,
		"sortDirection", q.Filter.SortDirection,
	)

	var page domain.Page[domain.ProductionSuggestion]
	if err := p.client.do(ctx, http.MethodGet, suggestionsPath, query, nil, &page); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &page, nil
}
