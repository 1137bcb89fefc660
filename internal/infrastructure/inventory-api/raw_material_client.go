package inventory_api

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

const (
	rawMaterialsPath = "/raw-materials"

	// optionsPageSize - размер страницы для выборки всего сырья в выпадающие списки
	optionsPageSize = 1000
)

// RawMaterialClient - клиент ресурса /raw-materials
type RawMaterialClient struct {
	client *Client
}

func NewRawMaterialClient(client *Client) *RawMaterialClient {
	return &RawMaterialClient{client: client}
}

func (r *RawMaterialClient) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.RawMaterial], error) {
	const op = "RawMaterialClient.List"

	query := pageQuery(q.Page, q.Size,
		"search", q.Filter.Search,
		"sortBy", q.Filter.SortBy,
		"sortDirection", q.Filter.SortDirection,
	)

	var page domain.Page[domain.RawMaterial]
	if err := r.client.do(ctx, http.MethodGet, rawMaterialsPath, query, nil, &page); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &page, nil
}

// ListAll возвращает сырье одной большой страницей, только содержимое конверта.
func (r *RawMaterialClient) ListAll(ctx context.Context) ([]domain.RawMaterial, error) {
	const op = "RawMaterialClient.ListAll"

	var page domain.Page[domain.RawMaterial]
	if err := r.client.do(ctx, http.MethodGet, rawMaterialsPath, pageQuery(0, optionsPageSize), nil, &page); err != nil {
		return nil, e.Wrap(op, err)
	}

	return page.Content, nil
}

func (r *RawMaterialClient) GetByID(ctx context.Context, id int64) (*domain.RawMaterial, error) {
	const op = "RawMaterialClient.GetByID"

	var rawMaterial domain.RawMaterial
	if err := r.client.do(ctx, http.MethodGet, idPath(rawMaterialsPath, id), nil, nil, &rawMaterial); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &rawMaterial, nil
}

func (r *RawMaterialClient) Create(ctx context.Context, rawMaterial domain.RawMaterial) (*domain.RawMaterial, error) {
	const op = "RawMaterialClient.Create"

	var created domain.RawMaterial
	if err := r.client.do(ctx, http.MethodPost, rawMaterialsPath, nil, rawMaterial, &created); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &created, nil
}

func (r *RawMaterialClient) Update(ctx context.Context, id int64, rawMaterial domain.RawMaterial) (*domain.RawMaterial, error) {
	const op = "RawMaterialClient.Update"

	var updated domain.RawMaterial
	if err := r.client.do(ctx, http.MethodPut, idPath(rawMaterialsPath, id), nil, rawMaterial, &updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &updated, nil
}

func (r *RawMaterialClient) Delete(ctx context.Context, id int64) error {
	const op = "RawMaterialClient.Delete"

	if err := r.client.do(ctx, http.MethodDelete, idPath(rawMaterialsPath, id), nil, nil, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
