package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountFrequency periodicidad de un plan de conteo cíclico.
type CountFrequency string

const (
	FrequencyDaily     CountFrequency = "DAILY"
	FrequencyWeekly    CountFrequency = "WEEKLY"
	FrequencyMonthly   CountFrequency = "MONTHLY"
	FrequencyQuarterly CountFrequency = "QUARTERLY"
)

// Valid indica si la frecuencia es reconocida.
func (f CountFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// Next devuelve la siguiente fecha de conteo a partir de t.
func (f CountFrequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	}
	return t
}

// CountMethod método de selección de ítems a contar.
type CountMethod string

const (
	CountMethodFull CountMethod = "FULL"
	CountMethodABC  CountMethod = "ABC"
	CountMethodSpot CountMethod = "SPOT"
)

// Valid indica si el método es reconocido.
func (m CountMethod) Valid() bool {
	switch m {
	case CountMethodFull, CountMethodABC, CountMethodSpot:
		return true
	}
	return false
}

// PlanStatus estado de un plan. COMPLETED y CANCELLED son terminales.
type PlanStatus string

const (
	PlanStatusScheduled  PlanStatus = "SCHEDULED"
	PlanStatusInProgress PlanStatus = "IN_PROGRESS"
	PlanStatusCompleted  PlanStatus = "COMPLETED"
	PlanStatusCancelled  PlanStatus = "CANCELLED"
)

// Terminal indica si el plan ya no admite cambios.
func (s PlanStatus) Terminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusCancelled
}

// CycleCountPlan plan de conteo cíclico para una bodega.
type CycleCountPlan struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	WarehouseID    string           `json:"warehouse_id"`
	Frequency      CountFrequency   `json:"frequency"`
	NextCountDate  time.Time        `json:"next_count_date"`
	CountMethod    CountMethod      `json:"count_method"`
	TargetAccuracy decimal.Decimal  `json:"target_accuracy"`
	ItemsToCount   int              `json:"items_to_count"`
	AssignedTo     []string         `json:"assigned_to"`
	Status         PlanStatus       `json:"status"`
	Accuracy       *decimal.Decimal `json:"accuracy,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

// Clone copia el plan incluyendo el slice de asignados.
func (p *CycleCountPlan) Clone() *CycleCountPlan {
	c := *p
	c.AssignedTo = append([]string(nil), p.AssignedTo...)
	return &c
}

// CountResolution forma de resolver una varianza.
type CountResolution string

const (
	ResolutionAdjustment CountResolution = "ADJUSTMENT"
	ResolutionRecount    CountResolution = "RECOUNT"
	ResolutionAccepted   CountResolution = "ACCEPTED"
)

// Valid indica si la resolución es reconocida.
func (r CountResolution) Valid() bool {
	switch r {
	case ResolutionAdjustment, ResolutionRecount, ResolutionAccepted:
		return true
	}
	return false
}

// CountResult resultado de contar un producto dentro de un plan.
// Se crea sin resolver y se resuelve una sola vez.
type CountResult struct {
	ID              string          `json:"id"`
	PlanID          string          `json:"plan_id"`
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	SystemQuantity  decimal.Decimal `json:"system_quantity"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Variance        decimal.Decimal `json:"variance"`
	VariancePercent decimal.Decimal `json:"variance_percent"`
	Resolved        bool            `json:"resolved"`
	Resolution      CountResolution `json:"resolution,omitempty"`
	AdjustmentID    string          `json:"adjustment_id,omitempty"`
	CountedBy       string          `json:"counted_by"`
	Timestamp       time.Time       `json:"timestamp"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
}
