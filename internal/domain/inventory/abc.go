package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// Umbrales de Pareto sobre el porcentaje acumulado del valor.
var (
	abcClassALimit = decimal.NewFromInt(80)
	abcClassBLimit = decimal.NewFromInt(95)
	hundred        = decimal.NewFromInt(100)
)

// ABCInput valor de inventario de un producto.
type ABCInput struct {
	ProductID string
	Value     decimal.Decimal
}

// ClassifyABC ordena por valor descendente (empate: productID ascendente), acumula el
// porcentaje sobre el total y asigna A (<= 80%), B (<= 95%) o C.
func ClassifyABC(items []ABCInput) entity.ABCAnalysis {
	sorted := make([]ABCInput, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Value.Equal(sorted[j].Value) {
			return sorted[i].Value.GreaterThan(sorted[j].Value)
		}
		return sorted[i].ProductID < sorted[j].ProductID
	})

	total := decimal.Zero
	for _, it := range sorted {
		total = total.Add(it.Value)
	}

	out := entity.ABCAnalysis{Classification: make([]entity.ABCItem, 0, len(sorted))}
	cumulative := decimal.Zero
	for _, it := range sorted {
		cumulative = cumulative.Add(it.Value)
		pct := decimal.Zero
		if total.IsPositive() {
			pct = cumulative.Div(total).Mul(hundred)
		}

		class := entity.ABCClassC
		switch {
		case pct.LessThanOrEqual(abcClassALimit):
			class = entity.ABCClassA
		case pct.LessThanOrEqual(abcClassBLimit):
			class = entity.ABCClassB
		}

		out.Classification = append(out.Classification, entity.ABCItem{
			ProductID:         it.ProductID,
			Value:             it.Value,
			CumulativePercent: pct.RoundBank(PercentPlaces),
			Class:             class,
		})

		var s *entity.ABCClassSummary
		switch class {
		case entity.ABCClassA:
			s = &out.Summary.A
		case entity.ABCClassB:
			s = &out.Summary.B
		default:
			s = &out.Summary.C
		}
		s.Count++
		s.Value = s.Value.Add(it.Value)
	}
	return out
}
