package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	ResourceProduct            = "product"
	ResourceRawMaterial        = "raw_material"
	ResourceProductRawMaterial = "product_raw_material"
	ResourceSuggestionReport   = "production_suggestion_report"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// AuditEvent описывает успешное изменение, выполненное через админку.
type AuditEvent struct {
	EventID    string    `json:"eventId"`
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ResourceID *int64    `json:"resourceId,omitempty"`
	ProductID  *int64    `json:"productId,omitempty"`
	ObjectKey  string    `json:"objectKey,omitempty"`
	SessionID  string    `json:"sessionId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewAuditEvent(sessionID, resource, action string, resourceID *int64) *AuditEvent {
	return &AuditEvent{
		EventID:    uuid.NewString(),
		Resource:   resource,
		Action:     action,
		ResourceID: resourceID,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithProduct привязывает событие к родительскому продукту (для связей продукт-сырье).
func (a *AuditEvent) WithProduct(productID int64) *AuditEvent {
	a.ProductID = &productID
	return a
}

// WithObjectKey привязывает событие к выгруженному объекту отчета.
func (a *AuditEvent) WithObjectKey(key string) *AuditEvent {
	a.ObjectKey = key
	return a
}

// PartitionKey - ключ сообщения: события одного ресурса попадают в одну партицию.
func (a *AuditEvent) PartitionKey() string {
	if a.ProductID != nil {
		return ResourceProduct + ":" + strconv.FormatInt(*a.ProductID, 10)
	}
	if a.ResourceID != nil {
		return a.Resource + ":" + strconv.FormatInt(*a.ResourceID, 10)
	}

	return a.Resource
}
