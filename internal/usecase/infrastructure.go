package usecase

import (
	"context"

	"github.com/DRSN-tech/production-admin/internal/domain"
)

// CatalogAPI - общий контракт клиентов ресурсов с полным CRUD (продукты, сырье).
type CatalogAPI[T any] interface {
	List(ctx context.Context, q domain.ListQuery) (*domain.Page[T], error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id int64, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type ProductAPI interface {
	CatalogAPI[domain.Product]
}

type RawMaterialAPI interface {
	CatalogAPI[domain.RawMaterial]
	ListAll(ctx context.Context) ([]domain.RawMaterial, error)
}

type ProductRawMaterialAPI interface {
	List(ctx context.Context, productID int64, page, size int) (*domain.Page[domain.ProductRawMaterial], error)
	Get(ctx context.Context, productID, rawMaterialID int64) (*domain.ProductRawMaterial, error)
	Create(ctx context.Context, productID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error)
	Update(ctx context.Context, productID, rawMaterialID int64, association domain.ProductRawMaterial) (*domain.ProductRawMaterial, error)
	Delete(ctx context.Context, productID, rawMaterialID int64) error
}

type ProductionSuggestionAPI interface {
	List(ctx context.Context, q domain.SuggestionQuery) (*domain.Page[domain.ProductionSuggestion], error)
}

// InventoryAPI - набор клиентов, из которых собирается рабочее пространство сессии.
type InventoryAPI struct {
	Products            ProductAPI
	RawMaterials        RawMaterialAPI
	ProductRawMaterials ProductRawMaterialAPI
	Suggestions         ProductionSuggestionAPI
}

// ReportsInfra выгружает готовый файл отчета и выдает временную ссылку на него.
type ReportsInfra interface {
	UploadReport(ctx context.Context, req *UploadReportReq) (*UploadReportRes, error)
}

// AuditPublisher принимает события аудита. Publish не блокирует вызывающего.
type AuditPublisher interface {
	Publish(event *domain.AuditEvent)
}

// NopAuditPublisher используется, когда аудит не настроен.
type NopAuditPublisher struct{}

func (NopAuditPublisher) Publish(*domain.AuditEvent) {}
