package domain

import "github.com/shopspring/decimal"

// ProductionSuggestion - рассчитанная бэкендом рекомендация по выпуску продукта. Только для чтения.
type ProductionSuggestion struct {
	ProductID         int64           `json:"productId"`
	ProductName       string          `json:"productName"`
	ProductValue      decimal.Decimal `json:"productValue"`
	SuggestedQuantity int64           `json:"suggestedQuantity"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	PriorityRank      int64           `json:"priorityRank"`
}

// ProductionSummary - сводка по рекомендациям с общей стоимостью выпуска.
type ProductionSummary struct {
	Suggestions          []ProductionSuggestion `json:"suggestions"`
	TotalProductionValue decimal.Decimal        `json:"totalProductionValue"`
}

func NewProductionSummary(suggestions []ProductionSuggestion) *ProductionSummary {
	total := decimal.Zero
	for _, s := range suggestions {
		total = total.Add(s.TotalValue)
	}

	return &ProductionSummary{
		Suggestions:          suggestions,
		TotalProductionValue: total,
	}
}
