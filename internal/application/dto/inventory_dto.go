package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para TRANSFER destination_warehouse_id es obligatorio; quantity de ADJUSTMENT lleva signo.
type RegisterMovementRequest struct {
	ProductID              string           `json:"product_id"`
	WarehouseID            string           `json:"warehouse_id"`
	DestinationWarehouseID string           `json:"destination_warehouse_id,omitempty"`
	Type                   string           `json:"type"`
	Quantity               decimal.Decimal  `json:"quantity"`
	UnitCost               *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason                 string           `json:"reason,omitempty"`
}

// ReorderSettingsRequest body para PUT .../reorder-settings. Campos ausentes no se modifican.
type ReorderSettingsRequest struct {
	ReorderPoint    *decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity,omitempty"`
	MaxStock        *decimal.Decimal `json:"max_stock,omitempty"`
}

// ReservationRequest body para reservar o liberar stock.
type ReservationRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReservationResponse resultado booleano de reservar/liberar.
type ReservationResponse struct {
	OK bool `json:"ok"`
}

// CreateBatchRequest body para POST /api/inventory/batches.
type CreateBatchRequest struct {
	BatchNumber       string           `json:"batch_number"`
	ProductID         string           `json:"product_id"`
	WarehouseID       string           `json:"warehouse_id"`
	Quantity          decimal.Decimal  `json:"quantity"`
	AvailableQuantity *decimal.Decimal `json:"available_quantity,omitempty"`
	ReceivedDate      *time.Time       `json:"received_date,omitempty"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	UnitCost          decimal.Decimal  `json:"unit_cost"`
	QualityChecked    *bool            `json:"quality_checked,omitempty"`
	Status            string           `json:"status,omitempty"`
}

// UpdateBatchStatusRequest body para PATCH /api/inventory/batches/:id/status.
type UpdateBatchStatusRequest struct {
	Status string `json:"status"`
}

// CreatePlanRequest body para POST /api/inventory/cycle-counts/plans.
type CreatePlanRequest struct {
	Name           string          `json:"name"`
	WarehouseID    string          `json:"warehouse_id"`
	Frequency      string          `json:"frequency"`
	NextCountDate  *time.Time      `json:"next_count_date,omitempty"`
	CountMethod    string          `json:"count_method"`
	TargetAccuracy decimal.Decimal `json:"target_accuracy"`
	ItemsToCount   int             `json:"items_to_count"`
	AssignedTo     []string        `json:"assigned_to"`
}

// RecordCountRequest body para POST /api/inventory/cycle-counts/plans/:id/results.
type RecordCountRequest struct {
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id,omitempty"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// ResolveVarianceRequest body para POST /api/inventory/cycle-counts/results/:id/resolve.
type ResolveVarianceRequest struct {
	Resolution string `json:"resolution"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// NewListResponse arma el listado; nunca serializa items como null.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Items: items}
}
