package usecase

import (
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/shopspring/decimal"
)

// STORES

// StoreState - снимок состояния store для слоя представления.
// Filter у продуктов и сырья - domain.ListFilter, у рекомендаций - domain.SuggestionFilter,
// у связей - ID продукта, которому принадлежат Items (0, пока ничего не загружено).
type StoreState[T any, F any] struct {
	Items   []T
	Page    domain.PageInfo
	Filter  F
	Loading bool
	Error   string
}

type ProductState = StoreState[domain.Product, domain.ListFilter]

type RawMaterialState = StoreState[domain.RawMaterial, domain.ListFilter]

type ProductRawMaterialState = StoreState[domain.ProductRawMaterial, int64]

type ProductionSuggestionState = StoreState[domain.ProductionSuggestion, domain.SuggestionFilter]

// REPORTS

// ExportReportReq - запрос на выгрузку отчета по рекомендациям.
type ExportReportReq struct {
	SessionID string
	Format    string
	Filter    domain.SuggestionFilter
}

// ExportReportRes - результат выгрузки: ключ объекта и временная ссылка на скачивание.
type ExportReportRes struct {
	ObjectKey            string
	URL                  string
	Rows                 int
	TotalProductionValue decimal.Decimal
}

// INFRASTRUCTURE

// UploadReportReq - содержимое отчета и его формат (csv, json).
type UploadReportReq struct {
	Format string
	Data   []byte
}

type UploadReportRes struct {
	ObjectKey string
	URL       string
}

// MAPPERS

func NewExportReportReq(sessionID, format string, filter domain.SuggestionFilter) *ExportReportReq {
	return &ExportReportReq{
		SessionID: sessionID,
		Format:    format,
		Filter:    filter,
	}
}

func NewExportReportRes(objectKey, url string, rows int, total decimal.Decimal) *ExportReportRes {
	return &ExportReportRes{
		ObjectKey:            objectKey,
		URL:                  url,
		Rows:                 rows,
		TotalProductionValue: total,
	}
}

func NewUploadReportReq(format string, data []byte) *UploadReportReq {
	return &UploadReportReq{
		Format: format,
		Data:   data,
	}
}

func NewUploadReportRes(objectKey, url string) *UploadReportRes {
	return &UploadReportRes{
		ObjectKey: objectKey,
		URL:       url,
	}
}
