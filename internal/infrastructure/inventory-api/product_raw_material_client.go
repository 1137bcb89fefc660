package inventory_api

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

// ProductRawMaterialClient - клиент ресурса /products/{productId}/raw-materials.
// Бэкенд адресует строку связи идентификатором сырья внутри продукта.
type ProductRawMaterialClient struct {
	client *Client
}

func NewProductRawMaterialClient(client *Client) *ProductRawMaterialClient {
	return &ProductRawMaterialClient{client: client}
}

func associationsPath(productID int64) string {
	return idPath(productsPath, productID) + rawMaterialsPath
}

func (p *ProductRawMaterialClient) List(ctx context.Context, productID int64, page, size int) (*domain.Page[domain.ProductRawMaterial], error) {
	const op = "ProductRawMaterialClient.List"

	var result domain.Page[domain.ProductRawMaterial]
	if err := p.client.do(ctx, http.MethodGet, associationsPath(productID), pageQuery(page, size), nil, &result); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &result, nil
}

func (p *ProductRawMaterialClient) Get(ctx context.Context, productID, rawMaterialID int64) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialClient.Get"

	var association domain.ProductRawMaterial
	path := idPath(associationsPath(productID), rawMaterialID)
	if err := p.client.do(ctx, http.MethodGet, path, nil, nil, &association); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &association, nil
}

func (p *ProductRawMaterialClient) Create(ctx context.Context, productID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialClient.Create"

	var created domain.ProductRawMaterial
	body := domain.NewAssociationRequest(association)
	if err := p.client.do(ctx, http.MethodPost, associationsPath(productID), nil, body, &created); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &created, nil
}

func (p *ProductRawMaterialClient) Update(ctx context.Context, productID, rawMaterialID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialClient.Update"

	var updated domain.ProductRawMaterial
	path := idPath(associationsPath(productID), rawMaterialID)
	body := domain.NewAssociationRequest(association)
	if err := p.client.do(ctx, http.MethodPut, path, nil, body, &updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &updated, nil
}

func (p *ProductRawMaterialClient) Delete(ctx context.Context, productID, rawMaterialID int64) error {
	const op = "ProductRawMaterialClient.Delete"

	path := idPath(associationsPath(productID), rawMaterialID)
	if err := p.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
