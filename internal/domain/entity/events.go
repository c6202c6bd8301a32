package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tópicos de eventos de dominio emitidos por el motor.
const (
	TopicMovementRecorded = "inventory.movement.recorded"
	TopicVarianceDetected = "inventory.count.variance_detected"
)

// MovementRecordedEvent se emite tras confirmar un movimiento.
type MovementRecordedEvent struct {
	Movement   StockMovement `json:"movement"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// VarianceDetectedEvent se emite cuando un conteo supera el umbral de varianza.
type VarianceDetectedEvent struct {
	PlanID          string          `json:"plan_id"`
	ProductID       string          `json:"product_id"`
	VariancePercent decimal.Decimal `json:"variance_percent"`
	CountResultID   string          `json:"count_result_id"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// PartitionKey clave de partición: los eventos de un mismo producto mantienen su orden.
func (e MovementRecordedEvent) PartitionKey() string { return e.Movement.ProductID }

// PartitionKey clave de partición por producto.
func (e VarianceDetectedEvent) PartitionKey() string { return e.ProductID }
