package domain

import "github.com/shopspring/decimal"

// RawMaterial описывает сырье и его остаток на складе
type RawMaterial struct {
	ID            *int64          `json:"id,omitempty"`
	Name          string          `json:"name"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
}

func NewRawMaterial(name string, stockQuantity decimal.Decimal) *RawMaterial {
	return &RawMaterial{
		Name:          name,
		StockQuantity: stockQuantity,
	}
}

func (r RawMaterial) Identity() (int64, bool) {
	if r.ID == nil {
		return 0, false
	}

	return *r.ID, true
}
