package inventory

import "github.com/shopspring/decimal"

// Precisión de redondeo (half-even / bancario) para costos y valores monetarios.
const (
	CostPlaces    int32 = 4 // costo unitario promedio
	MoneyPlaces   int32 = 2 // valores totales
	PercentPlaces int32 = 2 // porcentajes
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).RoundBank(CostPlaces)
}

// Value devuelve cantidad * costo redondeado a centavos.
func Value(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost).RoundBank(MoneyPlaces)
}
