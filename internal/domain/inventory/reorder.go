package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// Límites superiores (inclusivos) de cada banda de urgencia sobre onHand/reorderPoint.
var (
	criticalRatio = decimal.New(25, -2)
	highRatio     = decimal.New(50, -2)
	mediumRatio   = decimal.New(85, -2)
)

// QualifiesForReorder indica si el nivel tiene punto de reorden y está en o bajo él.
func QualifiesForReorder(level *entity.StockLevel) bool {
	return level.ReorderPoint.IsPositive() && level.OnHand.LessThanOrEqual(level.ReorderPoint)
}

// StockRatio onHand / reorderPoint. Requiere reorderPoint > 0.
func StockRatio(onHand, reorderPoint decimal.Decimal) decimal.Decimal {
	return onHand.Div(reorderPoint)
}

// ClassifyUrgency asigna la banda de urgencia a partir del ratio.
func ClassifyUrgency(ratio decimal.Decimal) entity.Urgency {
	switch {
	case ratio.LessThanOrEqual(criticalRatio):
		return entity.UrgencyCritical
	case ratio.LessThanOrEqual(highRatio):
		return entity.UrgencyHigh
	case ratio.LessThanOrEqual(mediumRatio):
		return entity.UrgencyMedium
	}
	return entity.UrgencyLow
}

// SuggestedQuantity cantidad a pedir:
// max(reorderQuantity, maxStock - onHand) si hay maxStock; si no reorderQuantity;
// sin reorderQuantity se usa el punto de reorden.
func SuggestedQuantity(level *entity.StockLevel) decimal.Decimal {
	qty := level.ReorderQuantity
	if !qty.IsPositive() {
		qty = level.ReorderPoint
	}
	if level.MaxStock.IsPositive() {
		qty = decimal.Max(qty, level.MaxStock.Sub(level.OnHand))
	}
	return qty
}

// BuildSuggestion arma la sugerencia para un nivel que califica.
func BuildSuggestion(level *entity.StockLevel) entity.ReorderSuggestion {
	ratio := StockRatio(level.OnHand, level.ReorderPoint)
	return entity.ReorderSuggestion{
		ProductID:         level.ProductID,
		WarehouseID:       level.WarehouseID,
		CurrentStock:      level.OnHand,
		ReorderPoint:      level.ReorderPoint,
		StockRatio:        ratio.Round(4),
		SuggestedQuantity: SuggestedQuantity(level),
		Urgency:           ClassifyUrgency(ratio),
	}
}
