package usecase

import (
	"context"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

// identifiable - сущность с назначаемым бэкендом идентификатором.
type identifiable interface {
	Identity() (int64, bool)
}

// failureMessages - сообщения об ошибках на случай, если бэкенд не прислал своего.
type failureMessages struct {
	fetch  string
	create string
	update string
	delete string
}

// CatalogStore - store списка с поиском, сортировкой и полным CRUD.
type CatalogStore[T identifiable] struct {
	store    *pagedStore[T, domain.ListFilter]
	api      CatalogAPI[T]
	name     string
	messages failureMessages
	logger   logger.Logger
}

func newCatalogStore[T identifiable](api CatalogAPI[T], name string, messages failureMessages, logger logger.Logger) *CatalogStore[T] {
	return &CatalogStore[T]{
		store:    newPagedStore[T](domain.NewListFilter(), logger),
		api:      api,
		name:     name,
		messages: messages,
		logger:   logger,
	}
}

// Fetch загружает страницу и при успехе делает filter активным. Ошибки не возвращает.
func (c *CatalogStore[T]) Fetch(ctx context.Context, page, size int, filter domain.ListFilter) {
	op := c.name + ".Fetch"

	c.store.fetch(ctx, op, c.messages.fetch, filter, func(ctx context.Context) (*domain.Page[T], error) {
		return c.api.List(ctx, domain.NewListQuery(page, size, filter))
	})
}

// Refresh повторяет выборку с запомненными страницей, размером и фильтром.
func (c *CatalogStore[T]) Refresh(ctx context.Context) {
	page, size, filter := c.store.cursor()
	c.Fetch(ctx, page, size, filter)
}

// Get читает одну запись напрямую из API, не затрагивая состояние store.
func (c *CatalogStore[T]) Get(ctx context.Context, id int64) (*T, error) {
	op := c.name + ".Get"

	item, err := c.api.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return item, nil
}

// Create создает запись и обновляет текущую страницу.
func (c *CatalogStore[T]) Create(ctx context.Context, item T) (*T, error) {
	op := c.name + ".Create"

	var created *T
	err := c.store.mutate(op, c.messages.create,
		func() error {
			var err error
			created, err = c.api.Create(ctx, item)
			return err
		},
		func() { c.Refresh(ctx) },
	)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update изменяет запись и заменяет ее в кэше ответом сервера без повторной выборки.
// Если сервер ответил без тела (204), кэш не патчится: текущая страница перечитывается.
func (c *CatalogStore[T]) Update(ctx context.Context, id int64, item T) (*T, error) {
	op := c.name + ".Update"

	var updated *T
	err := c.store.mutate(op, c.messages.update,
		func() error {
			var err error
			updated, err = c.api.Update(ctx, id, item)
			return err
		},
		func() {
			if updated == nil {
				c.Refresh(ctx)
				return
			}
			if _, ok := (*updated).Identity(); !ok {
				c.Refresh(ctx)
				return
			}

			c.store.replace(func(cached T) bool {
				cachedID, ok := cached.Identity()
				return ok && cachedID == id
			}, *updated)
		},
	)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete удаляет запись и обновляет текущую страницу, не сбрасывая ее номер.
func (c *CatalogStore[T]) Delete(ctx context.Context, id int64) error {
	op := c.name + ".Delete"

	return c.store.mutate(op, c.messages.delete,
		func() error { return c.api.Delete(ctx, id) },
		func() { c.Refresh(ctx) },
	)
}

func (c *CatalogStore[T]) Filter() domain.ListFilter {
	return c.store.currentFilter()
}

// RestoreFilter выставляет активный фильтр без выборки.
func (c *CatalogStore[T]) RestoreFilter(filter domain.ListFilter) {
	c.store.setFilter(filter)
}

func (c *CatalogStore[T]) State() StoreState[T, domain.ListFilter] {
	return c.store.state()
}

// ProductStore - store списка продуктов.
type ProductStore struct {
	*CatalogStore[domain.Product]
}

func NewProductStore(api ProductAPI, logger logger.Logger) *ProductStore {
	return &ProductStore{
		CatalogStore: newCatalogStore[domain.Product](api, "ProductStore", failureMessages{
			fetch:  "Failed to load products",
			create: "Failed to create product",
			update: "Failed to update product",
			delete: "Failed to delete product",
		}, logger),
	}
}

// RawMaterialStore - store списка сырья.
type RawMaterialStore struct {
	*CatalogStore[domain.RawMaterial]
	api RawMaterialAPI
}

func NewRawMaterialStore(api RawMaterialAPI, logger logger.Logger) *RawMaterialStore {
	return &RawMaterialStore{
		CatalogStore: newCatalogStore[domain.RawMaterial](api, "RawMaterialStore", failureMessages{
			fetch:  "Failed to fetch raw materials",
			create: "Failed to create raw material",
			update: "Failed to update raw material",
			delete: "Failed to delete raw material",
		}, logger),
		api: api,
	}
}

// Options возвращает все сырье для выпадающих списков.
// При ошибке пишет в лог и возвращает пустой список; состояние store не меняется.
func (r *RawMaterialStore) Options(ctx context.Context) []domain.RawMaterial {
	const op = "RawMaterialStore.Options"

	items, err := r.api.ListAll(ctx)
	if err != nil {
		r.logger.Errorf(e.Wrap(op, err), "failed to load raw material options")
		return []domain.RawMaterial{}
	}
	if items == nil {
		return []domain.RawMaterial{}
	}

	return items
}
