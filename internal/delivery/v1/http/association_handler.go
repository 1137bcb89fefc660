package http

import (
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// productParam совпадает с параметром маршрутов продукта: chi не допускает разные имена параметра в одном сегменте.
const productParam = "id"

// AssociationHandler обслуживает связи продукт-сырье. Строка связи адресуется ID сырья.
type AssociationHandler struct {
	workspaces usecase.WorkspaceProvider
	audit      usecase.AuditPublisher
	logger     logger.Logger
}

func NewAssociationHandler(workspaces usecase.WorkspaceProvider, audit usecase.AuditPublisher, logger logger.Logger) *AssociationHandler {
	return &AssociationHandler{
		workspaces: workspaces,
		audit:      audit,
		logger:     logger,
	}
}

// list загружает связи продукта. Для другого продукта, чем на экране, выборка начинается с первой страницы.
//
//	@Summary		Связи продукта
//	@Description	Загружает страницу сырья, необходимого для продукта
//	@Tags			product-raw-materials
//	@Produce		json
//	@Param			id		path		int						true	"ID продукта"
//	@Param			page	query		int						false	"Номер страницы (с нуля)"
//	@Param			size	query		int						false	"Размер страницы"
//	@Success		200		{object}	map[string]interface{}	"Состояние списка связей"
//	@Failure		400		{object}	ErrorResponse			"Некорректный ID или пагинация"
//	@Router			/products/{id}/raw-materials [get]
func (a *AssociationHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := parseIDParam(r, productParam)
	if err != nil {
		WriteError(w, err)
		return
	}

	store := a.workspaces.Get(ctx, sessionFromCtx(ctx)).ProductRawMaterials
	current := store.State()

	page := current.Page.CurrentPage
	if current.Filter != productID {
		page = 0
	}

	page, size, err := parsePaging(r.URL.Query(), page, current.Page.PageSize)
	if err != nil {
		a.logger.Warnf("%d associations: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	store.Fetch(ctx, productID, page, size)

	WriteSuccess(w, http.StatusOK, NewListView(store.State()))
}

// get
//
//	@Summary	Связь продукт-сырье
//	@Tags		product-raw-materials
//	@Produce	json
//	@Param		id				path		int	true	"ID продукта"
//	@Param		rawMaterialID	path		int	true	"ID сырья"
//	@Success	200				{object}	domain.ProductRawMaterial
//	@Failure	404				{object}	ErrorResponse	"Связь не найдена"
//	@Router		/products/{id}/raw-materials/{rawMaterialID} [get]
func (a *AssociationHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, rawMaterialID, err := parseAssociationPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	store := a.workspaces.Get(ctx, sessionFromCtx(ctx)).ProductRawMaterials
	association, err := store.Get(ctx, productID, rawMaterialID)
	if err != nil {
		a.logger.Warnf("association %d/%d: %v", productID, rawMaterialID, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, association)
}

// create
//
//	@Summary	Добавление сырья в продукт
//	@Tags		product-raw-materials
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"ID продукта"
//	@Param		body	body		domain.AssociationRequest	true	"Сырье и его количество"
//	@Success	201		{object}	domain.ProductRawMaterial
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	409		{object}	ErrorResponse	"Связь уже существует"
//	@Router		/products/{id}/raw-materials [post]
func (a *AssociationHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := parseIDParam(r, productParam)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req domain.AssociationRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	store := a.workspaces.Get(ctx, sessionID).ProductRawMaterials

	created, err := store.Create(ctx, productID, *domain.NewProductRawMaterial(req.RawMaterialID, req.QuantityNeeded))
	if err != nil {
		WriteError(w, err)
		return
	}

	a.audit.Publish(
		domain.NewAuditEvent(sessionID, domain.ResourceProductRawMaterial, domain.ActionCreate, &req.RawMaterialID).
			WithProduct(productID),
	)
	WriteSuccess(w, http.StatusCreated, created)
}

// update
//
//	@Summary	Изменение количества сырья
//	@Tags		product-raw-materials
//	@Accept		json
//	@Produce	json
//	@Param		id				path		int							true	"ID продукта"
//	@Param		rawMaterialID	path		int							true	"ID сырья"
//	@Param		body			body		domain.AssociationRequest	true	"Количество сырья"
//	@Success	200				{object}	domain.ProductRawMaterial
//	@Failure	400				{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/products/{id}/raw-materials/{rawMaterialID} [put]
func (a *AssociationHandler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, rawMaterialID, err := parseAssociationPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req domain.AssociationRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.RawMaterialID == 0 {
		req.RawMaterialID = rawMaterialID
	}

	sessionID := sessionFromCtx(ctx)
	store := a.workspaces.Get(ctx, sessionID).ProductRawMaterials

	updated, err := store.Update(ctx, productID, rawMaterialID, *domain.NewProductRawMaterial(req.RawMaterialID, req.QuantityNeeded))
	if err != nil {
		WriteError(w, err)
		return
	}

	a.audit.Publish(
		domain.NewAuditEvent(sessionID, domain.ResourceProductRawMaterial, domain.ActionUpdate, &rawMaterialID).
			WithProduct(productID),
	)
	WriteSuccess(w, http.StatusOK, updated)
}

// delete
//
//	@Summary	Удаление сырья из продукта
//	@Tags		product-raw-materials
//	@Param		id				path	int	true	"ID продукта"
//	@Param		rawMaterialID	path	int	true	"ID сырья"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse	"Связь не найдена"
//	@Router		/products/{id}/raw-materials/{rawMaterialID} [delete]
func (a *AssociationHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, rawMaterialID, err := parseAssociationPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	store := a.workspaces.Get(ctx, sessionID).ProductRawMaterials

	if err := store.Delete(ctx, productID, rawMaterialID); err != nil {
		WriteError(w, err)
		return
	}

	a.audit.Publish(
		domain.NewAuditEvent(sessionID, domain.ResourceProductRawMaterial, domain.ActionDelete, &rawMaterialID).
			WithProduct(productID),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (a *AssociationHandler) routes(router chi.Router) {
	router.Get("/", a.list)
	router.Post("/", a.create)
	router.Get("/{rawMaterialID}", a.get)
	router.Put("/{rawMaterialID}", a.update)
	router.Delete("/{rawMaterialID}", a.delete)
}

func parseAssociationPath(r *http.Request) (int64, int64, error) {
	productID, err := parseIDParam(r, productParam)
	if err != nil {
		return 0, 0, err
	}

	rawMaterialID, err := parseIDParam(r, "rawMaterialID")
	if err != nil {
		return 0, 0, err
	}

	return productID, rawMaterialID, nil
}
