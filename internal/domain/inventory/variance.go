package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// DefaultVarianceThreshold porcentaje (absoluto) a partir del cual una varianza es significativa.
var DefaultVarianceThreshold = decimal.NewFromInt(10)

// Variance contado - sistema.
func Variance(systemQty, countedQty decimal.Decimal) decimal.Decimal {
	return countedQty.Sub(systemQty)
}

// VariancePercent variance / sistema * 100; 0 cuando el sistema es 0.
func VariancePercent(variance, systemQty decimal.Decimal) decimal.Decimal {
	if systemQty.IsZero() {
		return decimal.Zero
	}
	return variance.Div(systemQty).Mul(hundred).RoundBank(PercentPlaces)
}

// IsSignificant |pct| >= umbral.
func IsSignificant(pct, threshold decimal.Decimal) bool {
	return pct.Abs().GreaterThanOrEqual(threshold)
}

// Accuracy porcentaje de resultados cuya varianza no es significativa. Sin resultados: 100.
func Accuracy(results []*entity.CountResult, threshold decimal.Decimal) decimal.Decimal {
	if len(results) == 0 {
		return hundred
	}
	ok := 0
	for _, r := range results {
		if !IsSignificant(r.VariancePercent, threshold) {
			ok++
		}
	}
	return decimal.NewFromInt(int64(ok)).Div(decimal.NewFromInt(int64(len(results)))).Mul(hundred).RoundBank(PercentPlaces)
}
