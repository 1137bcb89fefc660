package domain

import "github.com/shopspring/decimal"

func init() {
	// Инвентарный API принимает и отдает BigDecimal числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product описывает продукт. ID назначается бэкендом.
type Product struct {
	ID    *int64          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

func NewProduct(name string, value decimal.Decimal) *Product {
	return &Product{
		Name:  name,
		Value: value,
	}
}

// Identity возвращает ID продукта и признак его наличия.
func (p Product) Identity() (int64, bool) {
	if p.ID == nil {
		return 0, false
	}

	return *p.ID, true
}
