package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// catalogStore - store списка с поиском, сортировкой и полным CRUD.
type catalogStore[T any] interface {
	Fetch(ctx context.Context, page, size int, filter domain.ListFilter)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id int64, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
	State() usecase.StoreState[T, domain.ListFilter]
}

// CatalogHandler обслуживает продукты и сырье: оба ресурса устроены одинаково.
type CatalogHandler[T any] struct {
	workspaces usecase.WorkspaceProvider
	store      func(ws *usecase.Workspace) catalogStore[T]
	resource   string
	audit      usecase.AuditPublisher
	logger     logger.Logger
}

func NewCatalogHandler[T any](
	workspaces usecase.WorkspaceProvider,
	store func(ws *usecase.Workspace) catalogStore[T],
	resource string,
	audit usecase.AuditPublisher,
	logger logger.Logger,
) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		workspaces: workspaces,
		store:      store,
		resource:   resource,
		audit:      audit,
		logger:     logger,
	}
}

func NewProductHandler(workspaces usecase.WorkspaceProvider, audit usecase.AuditPublisher, logger logger.Logger) *CatalogHandler[domain.Product] {
	return NewCatalogHandler(workspaces, func(ws *usecase.Workspace) catalogStore[domain.Product] {
		return ws.Products
	}, domain.ResourceProduct, audit, logger)
}

func NewRawMaterialHandler(workspaces usecase.WorkspaceProvider, audit usecase.AuditPublisher, logger logger.Logger) *CatalogHandler[domain.RawMaterial] {
	return NewCatalogHandler(workspaces, func(ws *usecase.Workspace) catalogStore[domain.RawMaterial] {
		return ws.RawMaterials
	}, domain.ResourceRawMaterial, audit, logger)
}

// list загружает страницу. Параметры запроса переопределяют запомненные курсоры и фильтр;
// при смене фильтра без явного page выборка начинается с первой страницы.
//
//	@Summary		Страница каталога
//	@Description	Загружает страницу продуктов или сырья. Курсоры и фильтр запоминаются в сессии
//	@Tags			catalog
//	@Produce		json
//	@Param			page			query		int		false	"Номер страницы (с нуля)"
//	@Param			size			query		int		false	"Размер страницы"
//	@Param			search			query		string	false	"Поиск по названию"
//	@Param			sortBy			query		string	false	"Поле сортировки"
//	@Param			sortDirection	query		string	false	"Направление сортировки"	Enums(ASC, DESC)
//	@Success		200				{object}	map[string]interface{}	"Состояние списка"
//	@Failure		400				{object}	ErrorResponse			"Некорректная пагинация"
//	@Router			/products [get]
//	@Router			/raw-materials [get]
func (c *CatalogHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := c.workspaces.Get(ctx, sessionFromCtx(ctx))
	store := c.store(ws)

	current := store.State()
	query := r.URL.Query()

	filter := parseListFilter(query, current.Filter)
	page := current.Page.CurrentPage
	if filter != current.Filter {
		page = 0
	}

	page, size, err := parsePaging(query, page, current.Page.PageSize)
	if err != nil {
		c.logger.Warnf("%d %s: %v", http.StatusBadRequest, c.resource, err)
		WriteError(w, err)
		return
	}

	store.Fetch(ctx, page, size, filter)
	c.workspaces.Remember(ctx, ws)

	WriteSuccess(w, http.StatusOK, NewListView(store.State()))
}

// get
//
//	@Summary		Запись каталога
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		int						true	"ID записи"
//	@Success		200	{object}	map[string]interface{}	"Запись"
//	@Failure		400	{object}	ErrorResponse			"Некорректный ID"
//	@Failure		404	{object}	ErrorResponse			"Запись не найдена"
//	@Router			/products/{id} [get]
//	@Router			/raw-materials/{id} [get]
func (c *CatalogHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := c.store(c.workspaces.Get(ctx, sessionFromCtx(ctx))).Get(ctx, id)
	if err != nil {
		c.logger.Warnf("%s %d: %v", c.resource, id, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, item)
}

// create
//
//	@Summary		Создание записи каталога
//	@Description	Создает продукт или сырье и перечитывает текущую страницу
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			body	body		map[string]interface{}	true	"Продукт или сырье"
//	@Success		201		{object}	map[string]interface{}	"Созданная запись"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		502		{object}	ErrorResponse			"Инвентарный API недоступен"
//	@Router			/products [post]
//	@Router			/raw-materials [post]
func (c *CatalogHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var item T
	if err := decodeBody(w, r, &item); err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	created, err := c.store(c.workspaces.Get(ctx, sessionID)).Create(ctx, item)
	if err != nil {
		WriteError(w, err)
		return
	}

	c.audit.Publish(domain.NewAuditEvent(sessionID, c.resource, domain.ActionCreate, identityOf(created)))
	WriteSuccess(w, http.StatusCreated, created)
}

// update
//
//	@Summary		Изменение записи каталога
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"ID записи"
//	@Param			body	body		map[string]interface{}	true	"Продукт или сырье"
//	@Success		200		{object}	map[string]interface{}	"Измененная запись"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse			"Запись не найдена"
//	@Router			/products/{id} [put]
//	@Router			/raw-materials/{id} [put]
func (c *CatalogHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var item T
	if err := decodeBody(w, r, &item); err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	updated, err := c.store(c.workspaces.Get(ctx, sessionID)).Update(ctx, id, item)
	if err != nil {
		WriteError(w, err)
		return
	}

	c.audit.Publish(domain.NewAuditEvent(sessionID, c.resource, domain.ActionUpdate, &id))
	WriteSuccess(w, http.StatusOK, updated)
}

// delete
//
//	@Summary		Удаление записи каталога
//	@Tags			catalog
//	@Param			id	path	int	true	"ID записи"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Запись не найдена"
//	@Failure		409	{object}	ErrorResponse	"Запись используется"
//	@Router			/products/{id} [delete]
//	@Router			/raw-materials/{id} [delete]
func (c *CatalogHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	if err := c.store(c.workspaces.Get(ctx, sessionID)).Delete(ctx, id); err != nil {
		WriteError(w, err)
		return
	}

	c.audit.Publish(domain.NewAuditEvent(sessionID, c.resource, domain.ActionDelete, &id))
	w.WriteHeader(http.StatusNoContent)
}

// rawMaterialOptions отдает все сырье для выпадающего списка связей.
//
//	@Summary	Все сырье для выпадающего списка
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	OptionsView
//	@Router		/raw-materials/options [get]
func rawMaterialOptions(workspaces usecase.WorkspaceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ws := workspaces.Get(ctx, sessionFromCtx(ctx))

		WriteSuccess(w, http.StatusOK, OptionsView{Items: ws.RawMaterials.Options(ctx)})
	}
}

func (c *CatalogHandler[T]) routes(router chi.Router) {
	router.Get("/", c.list)
	router.Post("/", c.create)
	router.Get("/{id}", c.get)
	router.Put("/{id}", c.update)
	router.Delete("/{id}", c.delete)
}

func identityOf(item any) *int64 {
	identified, ok := item.(interface{ Identity() (int64, bool) })
	if !ok {
		return nil
	}

	id, ok := identified.Identity()
	if !ok {
		return nil
	}

	return &id
}
