package http

import (
	"net/http"

	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// SuggestionHandler отдает отчет с рекомендациями по выпуску и выгружает его в файл.
type SuggestionHandler struct {
	workspaces usecase.WorkspaceProvider
	reports    usecase.ReportUC // nil, если хранилище отчетов не настроено
	logger     logger.Logger
}

func NewSuggestionHandler(workspaces usecase.WorkspaceProvider, reports usecase.ReportUC, logger logger.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		workspaces: workspaces,
		reports:    reports,
		logger:     logger,
	}
}

// list
//
//	@Summary		Рекомендации по выпуску
//	@Description	Загружает страницу рекомендаций. Фильтр запоминается в сессии
//	@Tags			production-suggestions
//	@Produce		json
//	@Param			page			query		int		false	"Номер страницы (с нуля)"
//	@Param			size			query		int		false	"Размер страницы"
//	@Param			searchName		query		string	false	"Поиск по названию продукта"
//	@Param			sortDirection	query		string	false	"Направление сортировки"	Enums(ASC, DESC)
//	@Success		200				{object}	map[string]interface{}	"Состояние отчета"
//	@Failure		400				{object}	ErrorResponse			"Некорректная пагинация"
//	@Router			/production-suggestions [get]
func (s *SuggestionHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := s.workspaces.Get(ctx, sessionFromCtx(ctx))
	store := ws.Suggestions

	current := store.State()
	query := r.URL.Query()

	filter := parseSuggestionFilter(query, current.Filter)
	page := current.Page.CurrentPage
	if filter != current.Filter {
		page = 0
	}

	page, size, err := parsePaging(query, page, current.Page.PageSize)
	if err != nil {
		s.logger.Warnf("%d suggestions: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	store.Fetch(ctx, page, size, filter)
	s.workspaces.Remember(ctx, ws)

	WriteSuccess(w, http.StatusOK, NewListView(store.State()))
}

// setPage
//
//	@Summary	Переход на страницу рекомендаций
//	@Tags		production-suggestions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		pageRequest				true	"Номер страницы"
//	@Success	200		{object}	map[string]interface{}	"Состояние отчета"
//	@Failure	400		{object}	ErrorResponse			"Некорректная пагинация"
//	@Router		/production-suggestions/page [post]
func (s *SuggestionHandler) setPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Page < 0 {
		WriteError(w, e.ErrInvalidPagination)
		return
	}

	s.apply(w, r, func(store *usecase.ProductionSuggestionStore) {
		store.SetPage(r.Context(), req.Page)
	})
}

// setPageSize
//
//	@Summary	Размер страницы рекомендаций
//	@Tags		production-suggestions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		pageSizeRequest			true	"Размер страницы"
//	@Success	200		{object}	map[string]interface{}	"Состояние отчета"
//	@Failure	400		{object}	ErrorResponse			"Некорректная пагинация"
//	@Router		/production-suggestions/page-size [post]
func (s *SuggestionHandler) setPageSize(w http.ResponseWriter, r *http.Request) {
	var req pageSizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Size <= 0 {
		WriteError(w, e.ErrInvalidPagination)
		return
	}

	s.apply(w, r, func(store *usecase.ProductionSuggestionStore) {
		store.SetPageSize(r.Context(), req.Size)
	})
}

// setSearch
//
//	@Summary	Поиск рекомендаций по названию продукта
//	@Tags		production-suggestions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		searchRequest			true	"Строка поиска"
//	@Success	200		{object}	map[string]interface{}	"Состояние отчета"
//	@Router		/production-suggestions/search [post]
func (s *SuggestionHandler) setSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	s.apply(w, r, func(store *usecase.ProductionSuggestionStore) {
		store.SetSearchName(r.Context(), req.SearchName)
	})
}

// setSort
//
//	@Summary	Сортировка рекомендаций
//	@Tags		production-suggestions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		sortRequest				true	"Направление сортировки"
//	@Success	200		{object}	map[string]interface{}	"Состояние отчета"
//	@Router		/production-suggestions/sort [post]
func (s *SuggestionHandler) setSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	s.apply(w, r, func(store *usecase.ProductionSuggestionStore) {
		store.SetSortDirection(r.Context(), req.SortDirection)
	})
}

// apply выполняет сеттер store, запоминает фильтры сессии и отдает новое состояние.
func (s *SuggestionHandler) apply(w http.ResponseWriter, r *http.Request, set func(store *usecase.ProductionSuggestionStore)) {
	ctx := r.Context()
	ws := s.workspaces.Get(ctx, sessionFromCtx(ctx))

	set(ws.Suggestions)
	s.workspaces.Remember(ctx, ws)

	WriteSuccess(w, http.StatusOK, NewListView(ws.Suggestions.State()))
}

// export выгружает все рекомендации по активному фильтру сессии.
//
//	@Summary		Выгрузка рекомендаций
//	@Description	Выгружает все рекомендации по активному фильтру в CSV или JSON и сохраняет файл в хранилище отчетов
//	@Tags			production-suggestions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		exportRequest	true	"Формат файла"
//	@Success		201		{object}	ExportView
//	@Failure		400		{object}	ErrorResponse	"Неподдерживаемый формат"
//	@Failure		422		{object}	ErrorResponse	"Отчет слишком большой"
//	@Failure		503		{object}	ErrorResponse	"Хранилище отчетов не настроено"
//	@Router			/production-suggestions/export [post]
func (s *SuggestionHandler) export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.reports == nil {
		WriteError(w, e.ErrReportsDisabled)
		return
	}

	var req exportRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sessionID := sessionFromCtx(ctx)
	filter := s.workspaces.Get(ctx, sessionID).Suggestions.Filter()

	res, err := s.reports.ExportSuggestions(ctx, usecase.NewExportReportReq(sessionID, req.Format, filter))
	if err != nil {
		s.logger.Errorf(err, "failed to export suggestion report, session_id=%s", sessionID)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewExportView(res))
}

func (s *SuggestionHandler) routes(router chi.Router) {
	router.Get("/", s.list)
	router.Post("/page", s.setPage)
	router.Post("/page-size", s.setPageSize)
	router.Post("/search", s.setSearch)
	router.Post("/sort", s.setSort)
	router.Post("/export", s.export)
}
