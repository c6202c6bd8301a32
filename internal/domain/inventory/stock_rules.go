package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// ValidateQuantity aplica las reglas de cantidad por tipo:
// IN/OUT/TRANSFER exigen cantidad > 0; ADJUSTMENT exige cantidad distinta de cero.
func ValidateQuantity(t entity.MovementType, quantity decimal.Decimal) error {
	if t == entity.MovementTypeADJUSTMENT {
		if quantity.IsZero() {
			return domain.ErrInvalidQuantity
		}
		return nil
	}
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Recalculate recalcula los campos derivados del nivel.
// NeedsReorder solo se activa con un punto de reorden configurado (> 0).
func Recalculate(level *entity.StockLevel) {
	level.Available = level.OnHand.Sub(level.Reserved)
	level.TotalValue = Value(level.OnHand, level.UnitCost)
	level.NeedsReorder = level.ReorderPoint.IsPositive() && level.OnHand.LessThanOrEqual(level.ReorderPoint)
}

// ApplyMovement aplica el movimiento sobre el nivel. Si devuelve error el nivel no se modifica.
// El movimiento debe haber pasado ValidateQuantity.
func ApplyMovement(level *entity.StockLevel, mov *entity.StockMovement) error {
	q := mov.Quantity
	switch mov.Type {
	case entity.MovementTypeIN:
		if mov.UnitCost != nil {
			level.UnitCost = CostCalculator(level.OnHand, level.UnitCost, q, *mov.UnitCost)
		}
		level.OnHand = level.OnHand.Add(q)
	case entity.MovementTypeOUT:
		if level.Available.LessThan(q) {
			return domain.ErrInsufficientStock
		}
		level.OnHand = level.OnHand.Sub(q)
	case entity.MovementTypeTRANSFER:
		if level.Available.LessThan(q) {
			return domain.ErrInsufficientStock
		}
		level.OnHand = level.OnHand.Sub(q)
		level.InTransit = level.InTransit.Add(q)
	case entity.MovementTypeADJUSTMENT:
		if q.IsNegative() {
			// Un ajuste negativo no puede dejar on-hand por debajo de lo reservado.
			if level.Available.LessThan(q.Neg()) {
				return domain.ErrInsufficientStock
			}
		} else if mov.UnitCost != nil {
			level.UnitCost = CostCalculator(level.OnHand, level.UnitCost, q, *mov.UnitCost)
		}
		level.OnHand = level.OnHand.Add(q)
	default:
		return domain.ErrInvalidInput
	}
	Recalculate(level)
	return nil
}

// Reserve aparta cantidad del disponible sin tocar on-hand. Devuelve false si no alcanza.
func Reserve(level *entity.StockLevel, quantity decimal.Decimal) bool {
	if quantity.GreaterThan(level.Available) {
		return false
	}
	level.Reserved = level.Reserved.Add(quantity)
	Recalculate(level)
	return true
}

// Release libera cantidad reservada; nunca deja reserved negativo.
func Release(level *entity.StockLevel, quantity decimal.Decimal) {
	level.Reserved = decimal.Max(decimal.Zero, level.Reserved.Sub(quantity))
	Recalculate(level)
}

// ApplyReorderSettings mezcla solo los campos provistos. Valores negativos son inválidos.
func ApplyReorderSettings(level *entity.StockLevel, s entity.ReorderSettings) error {
	for _, v := range []*decimal.Decimal{s.ReorderPoint, s.ReorderQuantity, s.MaxStock} {
		if v != nil && v.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if s.ReorderPoint != nil {
		level.ReorderPoint = *s.ReorderPoint
	}
	if s.ReorderQuantity != nil {
		level.ReorderQuantity = *s.ReorderQuantity
	}
	if s.MaxStock != nil {
		level.MaxStock = *s.MaxStock
	}
	Recalculate(level)
	return nil
}
