package http

import (
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/shopspring/decimal"
)

// PaginationView - курсоры пагинации вместе с готовыми для отрисовки значениями.
type PaginationView struct {
	CurrentPage     int    `json:"currentPage"`
	PageSize        int    `json:"pageSize"`
	TotalPages      int    `json:"totalPages"`
	TotalElements   int64  `json:"totalElements"`
	From            int64  `json:"from"`
	To              int64  `json:"to"`
	HasPrevious     bool   `json:"hasPrevious"`
	HasNext         bool   `json:"hasNext"`
	Summary         string `json:"summary"`
	PageSizeOptions []int  `json:"pageSizeOptions"`
}

// ListView - состояние store, отданное браузеру.
type ListView[T any, F any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationView `json:"pagination"`
	Filter     F              `json:"filter"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error"`
}

type OptionsView struct {
	Items []domain.RawMaterial `json:"items"`
}

type ExportView struct {
	ObjectKey            string          `json:"objectKey"`
	URL                  string          `json:"url"`
	Rows                 int             `json:"rows"`
	TotalProductionValue decimal.Decimal `json:"totalProductionValue"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type pageSizeRequest struct {
	Size int `json:"size"`
}

type searchRequest struct {
	SearchName string `json:"searchName"`
}

type sortRequest struct {
	SortDirection string `json:"sortDirection"`
}

type exportRequest struct {
	Format string `json:"format"`
}

func NewPaginationView(info domain.PageInfo) PaginationView {
	return PaginationView{
		CurrentPage:     info.CurrentPage,
		PageSize:        info.PageSize,
		TotalPages:      info.TotalPages,
		TotalElements:   info.TotalElements,
		From:            info.From(),
		To:              info.To(),
		HasPrevious:     info.HasPrevious(),
		HasNext:         info.HasNext(),
		Summary:         info.Summary(),
		PageSizeOptions: domain.PageSizeOptions,
	}
}

func NewListView[T any, F any](state usecase.StoreState[T, F]) ListView[T, F] {
	return ListView[T, F]{
		Items:      state.Items,
		Pagination: NewPaginationView(state.Page),
		Filter:     state.Filter,
		Loading:    state.Loading,
		Error:      state.Error,
	}
}

func NewExportView(res *usecase.ExportReportRes) ExportView {
	return ExportView{
		ObjectKey:            res.ObjectKey,
		URL:                  res.URL,
		Rows:                 res.Rows,
		TotalProductionValue: res.TotalProductionValue,
	}
}
