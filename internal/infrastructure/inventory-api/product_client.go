package inventory_api

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

const productsPath = "/products"

// ProductClient - клиент ресурса /products
type ProductClient struct {
	client *Client
}

func NewProductClient(client *Client) *ProductClient {
	return &ProductClient{client: client}
}

func (p *ProductClient) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.Product], error) {
	const op = "ProductClient.List"

	query := pageQuery(q.Page, q.Size,
		"search", q.Filter.Search,
		"sortBy", q.Filter.SortBy,
		"sortDirection", q.Filter.SortDirection,
	)

	var page domain.Page[domain.Product]
	if err := p.client.do(ctx, http.MethodGet, productsPath, query, nil, &page); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &page, nil
}

func (p *ProductClient) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductClient.GetByID"

	var product domain.Product
	if err := p.client.do(ctx, http.MethodGet, idPath(productsPath, id), nil, nil, &product); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &product, nil
}

func (p *ProductClient) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const op = "ProductClient.Create"

	var created domain.Product
	if err := p.client.do(ctx, http.MethodPost, productsPath, nil, product, &created); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &created, nil
}

func (p *ProductClient) Update(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	const op = "ProductClient.Update"

	var updated domain.Product
	if err := p.client.do(ctx, http.MethodPut, idPath(productsPath, id), nil, product, &updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &updated, nil
}

func (p *ProductClient) Delete(ctx context.Context, id int64) error {
	const op = "ProductClient.Delete"

	if err := p.client.do(ctx, http.MethodDelete, idPath(productsPath, id), nil, nil, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
