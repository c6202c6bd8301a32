package entity

import "github.com/shopspring/decimal"

// Urgency nivel de urgencia de una sugerencia de reorden.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Rank orden de prioridad (0 = más urgente).
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	}
	return 3
}

// ReorderSuggestion sugerencia de compra calculada (no se persiste).
type ReorderSuggestion struct {
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	StockRatio        decimal.Decimal `json:"stock_ratio"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	Urgency           Urgency         `json:"urgency"`
}
