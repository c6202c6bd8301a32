package entity

import "github.com/shopspring/decimal"

// ValuationMethodAverage costo promedio ponderado (único soportado).
const ValuationMethodAverage = "AVERAGE"

// ValuationTotals totales de unidades, valor y filas con existencias.
type ValuationTotals struct {
	TotalUnits decimal.Decimal `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
	TotalItems int             `json:"total_items"`
}

// WarehouseValuation desglose por bodega.
type WarehouseValuation struct {
	WarehouseID string `json:"warehouse_id"`
	ValuationTotals
}

// Valuation resultado de valorizar el inventario.
// ByWarehouse solo se llena cuando no se filtra por bodega.
type Valuation struct {
	ValuationTotals
	ValuationMethod string               `json:"valuation_method"`
	ByWarehouse     []WarehouseValuation `json:"by_warehouse,omitempty"`
}

// ABCClass clase de Pareto.
type ABCClass string

const (
	ABCClassA ABCClass = "A"
	ABCClassB ABCClass = "B"
	ABCClassC ABCClass = "C"
)

// ABCItem fila de la clasificación ABC.
type ABCItem struct {
	ProductID         string          `json:"product_id"`
	Value             decimal.Decimal `json:"value"`
	CumulativePercent decimal.Decimal `json:"cumulative_percent"`
	Class             ABCClass        `json:"class"`
}

// ABCClassSummary conteo y valor acumulado de una clase.
type ABCClassSummary struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// ABCSummary resumen por clase.
type ABCSummary struct {
	A ABCClassSummary `json:"A"`
	B ABCClassSummary `json:"B"`
	C ABCClassSummary `json:"C"`
}

// ABCAnalysis resultado del análisis ABC.
type ABCAnalysis struct {
	Classification []ABCItem  `json:"classification"`
	Summary        ABCSummary `json:"summary"`
}
