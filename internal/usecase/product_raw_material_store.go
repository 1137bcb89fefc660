package usecase

import (
	"context"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

const (
	msgFetchAssociations = "Failed to fetch associations"
	msgCreateAssociation = "Failed to create association"
	msgUpdateAssociation = "Failed to update association"
	msgDeleteAssociation = "Failed to delete association"
)

// ProductRawMaterialStore - store связей продукт-сырье.
// Каждая операция явно принимает productID; store запоминает продукт, которому принадлежат Items,
// и очищает список перед выборкой связей другого продукта: строки одного продукта
// не показываются под другим даже при неудачной выборке.
type ProductRawMaterialStore struct {
	store  *pagedStore[domain.ProductRawMaterial, int64]
	api    ProductRawMaterialAPI
	logger logger.Logger
}

func NewProductRawMaterialStore(api ProductRawMaterialAPI, logger logger.Logger) *ProductRawMaterialStore {
	return &ProductRawMaterialStore{
		store:  newPagedStore[domain.ProductRawMaterial](int64(0), logger),
		api:    api,
		logger: logger,
	}
}

func (p *ProductRawMaterialStore) Fetch(ctx context.Context, productID int64, page, size int) {
	const op = "ProductRawMaterialStore.Fetch"

	if _, _, current := p.store.cursor(); current != productID {
		p.store.reset(productID)
	}

	p.store.fetch(ctx, op, msgFetchAssociations, productID, func(ctx context.Context) (*domain.Page[domain.ProductRawMaterial], error) {
		return p.api.List(ctx, productID, page, size)
	})
}

// Refresh обновляет список связей productID. Если на экране связи того же продукта,
// сохраняются текущие страница и размер; иначе выборка начинается с первой страницы.
func (p *ProductRawMaterialStore) Refresh(ctx context.Context, productID int64) {
	page, size, current := p.store.cursor()
	if current != productID {
		page = 0
	}

	p.Fetch(ctx, productID, page, size)
}

// Get читает одну связь напрямую из API, не затрагивая состояние store.
func (p *ProductRawMaterialStore) Get(ctx context.Context, productID, rawMaterialID int64) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialStore.Get"

	association, err := p.api.Get(ctx, productID, rawMaterialID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return association, nil
}

func (p *ProductRawMaterialStore) Create(ctx context.Context, productID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialStore.Create"

	var created *domain.ProductRawMaterial
	err := p.store.mutate(op, msgCreateAssociation,
		func() error {
			var err error
			created, err = p.api.Create(ctx, productID, association)
			return err
		},
		func() { p.Refresh(ctx, productID) },
	)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update изменяет количество сырья в связи; строка адресуется ID сырья.
func (p *ProductRawMaterialStore) Update(ctx context.Context, productID, rawMaterialID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error) {
	const op = "ProductRawMaterialStore.Update"

	var updated *domain.ProductRawMaterial
	err := p.store.mutate(op, msgUpdateAssociation,
		func() error {
			var err error
			updated, err = p.api.Update(ctx, productID, rawMaterialID, association)
			return err
		},
		func() { p.Refresh(ctx, productID) },
	)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (p *ProductRawMaterialStore) Delete(ctx context.Context, productID, rawMaterialID int64) error {
	const op = "ProductRawMaterialStore.Delete"

	return p.store.mutate(op, msgDeleteAssociation,
		func() error { return p.api.Delete(ctx, productID, rawMaterialID) },
		func() { p.Refresh(ctx, productID) },
	)
}

func (p *ProductRawMaterialStore) State() ProductRawMaterialState {
	return p.store.state()
}
