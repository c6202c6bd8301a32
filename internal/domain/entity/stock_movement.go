package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado (sale de origen, queda en tránsito)
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste (+/-)
)

// Valid indica si el tipo es uno de los soportados por el libro mayor.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTRANSFER, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement registro inmutable del libro mayor de stock.
// Quantity es positiva para IN/OUT/TRANSFER; en ADJUSTMENT lleva signo.
type StockMovement struct {
	ID                     string           `json:"id"`
	ProductID              string           `json:"product_id"`
	WarehouseID            string           `json:"warehouse_id"`
	Type                   MovementType     `json:"type"`
	Quantity               decimal.Decimal  `json:"quantity"`
	UnitCost               *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost              decimal.Decimal  `json:"total_cost"`
	DestinationWarehouseID string           `json:"destination_warehouse_id,omitempty"`
	Reason                 string           `json:"reason,omitempty"`
	PerformedBy            string           `json:"performed_by"`
	Timestamp              time.Time        `json:"timestamp"`
}

// MovementFilter filtros opcionales para listar movimientos de un producto.
type MovementFilter struct {
	WarehouseID string
	Type        MovementType
	From        *time.Time
	To          *time.Time
}

// Matches indica si el movimiento cumple el filtro (rango de fechas inclusivo).
func (f MovementFilter) Matches(m *StockMovement) bool {
	if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.From != nil && m.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Timestamp.After(*f.To) {
		return false
	}
	return true
}
