package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockKey clave compuesta (producto, bodega) de un nivel de stock.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// String representación estable de la clave, útil para locks e índices.
func (k StockKey) String() string {
	return k.WarehouseID + "/" + k.ProductID
}

// StockLevel agregado mutable por producto y bodega.
// Available = OnHand - Reserved y TotalValue = OnHand * UnitCost se recalculan tras cada cambio.
type StockLevel struct {
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	OnHand          decimal.Decimal `json:"on_hand"`
	Reserved        decimal.Decimal `json:"reserved"`
	Available       decimal.Decimal `json:"available"`
	InTransit       decimal.Decimal `json:"in_transit"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	MaxStock        decimal.Decimal `json:"max_stock"`
	NeedsReorder    bool            `json:"needs_reorder"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewStockLevel crea un nivel en cero para la clave indicada.
func NewStockLevel(productID, warehouseID string) *StockLevel {
	return &StockLevel{
		ProductID:   productID,
		WarehouseID: warehouseID,
	}
}

// Key devuelve la clave compuesta del nivel.
func (l *StockLevel) Key() StockKey {
	return StockKey{ProductID: l.ProductID, WarehouseID: l.WarehouseID}
}

// Clone copia por valor (decimal es inmutable).
func (l *StockLevel) Clone() *StockLevel {
	c := *l
	return &c
}

// ReorderSettings campos opcionales para actualizar umbrales de reorden (merge parcial).
type ReorderSettings struct {
	ReorderPoint    *decimal.Decimal
	ReorderQuantity *decimal.Decimal
	MaxStock        *decimal.Decimal
}
