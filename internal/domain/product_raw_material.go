package domain

import "github.com/shopspring/decimal"

// ProductRawMaterial описывает связь продукта с сырьем и требуемое количество сырья на единицу продукта.
type ProductRawMaterial struct {
	ID              *int64          `json:"id,omitempty"`
	ProductID       *int64          `json:"productId,omitempty"`
	ProductName     string          `json:"productName,omitempty"`
	RawMaterialID   int64           `json:"rawMaterialId"`
	RawMaterialName string          `json:"rawMaterialName,omitempty"`
	QuantityNeeded  decimal.Decimal `json:"quantityNeeded"`
}

func NewProductRawMaterial(rawMaterialID int64, quantityNeeded decimal.Decimal) *ProductRawMaterial {
	return &ProductRawMaterial{
		RawMaterialID:  rawMaterialID,
		QuantityNeeded: quantityNeeded,
	}
}

// AssociationRequest - тело запроса на создание и изменение связи.
// id и productId берутся из пути и в теле не передаются.
type AssociationRequest struct {
	RawMaterialID  int64           `json:"rawMaterialId"`
	QuantityNeeded decimal.Decimal `json:"quantityNeeded"`
}

func NewAssociationRequest(association ProductRawMaterial) *AssociationRequest {
	return &AssociationRequest{
		RawMaterialID:  association.RawMaterialID,
		QuantityNeeded: association.QuantityNeeded,
	}
}
