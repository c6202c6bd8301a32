package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus estado de un lote.
type BatchStatus string

// Estados de lote.
const (
	BatchStatusActive     BatchStatus = "ACTIVE"
	BatchStatusQuarantine BatchStatus = "QUARANTINE"
	BatchStatusExpired    BatchStatus = "EXPIRED"
	BatchStatusConsumed   BatchStatus = "CONSUMED"
	BatchStatusRecalled   BatchStatus = "RECALLED"
)

// Valid indica si el estado es reconocido.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchStatusActive, BatchStatusQuarantine, BatchStatusExpired, BatchStatusConsumed, BatchStatusRecalled:
		return true
	}
	return false
}

// Batch lote recibido de un producto en una bodega. Independiente del StockLevel agregado.
type Batch struct {
	ID                string          `json:"id"`
	BatchNumber       string          `json:"batch_number"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ReceivedDate      time.Time       `json:"received_date"`
	ManufacturingDate *time.Time      `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	QualityChecked    bool            `json:"quality_checked"`
	Status            BatchStatus     `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ExpiresWithin indica si la fecha de vencimiento cae en [from, to]. Sin fecha: nunca.
func (b *Batch) ExpiresWithin(from, to time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return !b.ExpiryDate.Before(from) && !b.ExpiryDate.After(to)
}
