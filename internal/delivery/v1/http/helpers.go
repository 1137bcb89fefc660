package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse переводит ошибку в HTTP-статус и сообщение.
// Статус ответа инвентарного API передается как есть, недоступность API дает 502.
// Если к ошибке прикреплено сообщение для пользователя, используется оно.
func ToHTTPResponse(err error) (int, string) {
	code, msg := statusOf(err)
	if userMsg, ok := e.UserMessage(err); ok {
		msg = userMsg
	}

	return code, msg
}

func statusOf(err error) (int, string) {
	var apiErr *e.APIError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.StatusCode, e.MessageOf(err, http.StatusText(apiErr.StatusCode))
	case errors.Is(err, e.ErrTransport):
		return http.StatusBadGateway, e.ErrTransport.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidPagination):
		return http.StatusBadRequest, e.ErrInvalidPagination.Error()
	case errors.Is(err, e.ErrInvalidBody):
		return http.StatusBadRequest, e.ErrInvalidBody.Error()
	case errors.Is(err, e.ErrUnsupportedFormat):
		return http.StatusBadRequest, e.ErrUnsupportedFormat.Error()
	case errors.Is(err, e.ErrReportTooLarge):
		return http.StatusUnprocessableEntity, e.ErrReportTooLarge.Error()
	case errors.Is(err, e.ErrReportsDisabled):
		return http.StatusServiceUnavailable, e.ErrReportsDisabled.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// decodeBody читает JSON-тело запроса не больше maxBodySize.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidBody)
	}

	return nil
}

// parseIDParam читает положительный идентификатор из параметра пути.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidID)
	}

	return id, nil
}

// parsePaging накладывает page и size из запроса на текущие значения.
func parsePaging(query url.Values, page, size int) (int, int, error) {
	if raw := query.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, e.Wrap("page="+raw, e.ErrInvalidPagination)
		}
		page = v
	}

	if raw := query.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, e.Wrap("size="+raw, e.ErrInvalidPagination)
		}
		size = v
	}

	return page, size, nil
}

// parseListFilter накладывает параметры поиска и сортировки из запроса на активный фильтр.
// Присутствующий, но пустой параметр сбрасывает значение.
func parseListFilter(query url.Values, filter domain.ListFilter) domain.ListFilter {
	if query.Has("search") {
		filter.Search = query.Get("search")
	}
	if query.Has("sortBy") {
		filter.SortBy = query.Get("sortBy")
	}
	if query.Has("sortDirection") {
		filter.SortDirection = query.Get("sortDirection")
	}

	return filter
}

func parseSuggestionFilter(query url.Values, filter domain.SuggestionFilter) domain.SuggestionFilter {
	if query.Has("searchName") {
		filter.SearchName = query.Get("searchName")
	}
	if query.Has("sortDirection") {
		filter.SortDirection = query.Get("sortDirection")
	}

	return filter
}
