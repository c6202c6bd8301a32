package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

func assertInvariants(t *testing.T, l *entity.StockLevel) {
	t.Helper()
	assert.False(t, l.OnHand.IsNegative(), "onHand >= 0")
	assert.False(t, l.Reserved.IsNegative(), "reserved >= 0")
	assert.True(t, l.Reserved.LessThanOrEqual(l.OnHand), "reserved <= onHand")
	assert.True(t, l.Available.Equal(l.OnHand.Sub(l.Reserved)), "available = onHand - reserved")
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (100*50 + 50*80) / 150 = 60
	assertDec(t, "60", inventory.CostCalculator(d("100"), d("50"), d("50"), d("80")))
	// Sin stock previo toma el costo de entrada
	assertDec(t, "12.5", inventory.CostCalculator(decimal.Zero, decimal.Zero, d("3"), d("12.5")))
	// Redondeo bancario a 4 decimales: 10/3
	assertDec(t, "3.3333", inventory.CostCalculator(decimal.Zero, decimal.Zero, d("3"), d("3.33333")))
	assertDec(t, "0", inventory.CostCalculator(decimal.Zero, d("5"), decimal.Zero, d("5")))
}

func TestValidateQuantity(t *testing.T) {
	cases := []struct {
		name string
		typ  entity.MovementType
		qty  string
		ok   bool
	}{
		{"in positivo", entity.MovementTypeIN, "1", true},
		{"in cero", entity.MovementTypeIN, "0", false},
		{"out negativo", entity.MovementTypeOUT, "-3", false},
		{"transfer positivo", entity.MovementTypeTRANSFER, "2.5", true},
		{"ajuste negativo", entity.MovementTypeADJUSTMENT, "-20", true},
		{"ajuste cero", entity.MovementTypeADJUSTMENT, "0", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateQuantity(tc.typ, d(tc.qty))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			}
		})
	}
}

func TestApplyMovement_ConservacionYCosto(t *testing.T) {
	l := entity.NewStockLevel("prod-1", "wh-1")
	cost := d("50")
	for _, q := range []string{"40", "35", "25"} {
		require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d(q), UnitCost: &cost}))
		assertInvariants(t, l)
	}
	assertDec(t, "100", l.OnHand)
	assertDec(t, "50", l.UnitCost)
	assertDec(t, "5000", l.TotalValue)

	require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeOUT, Quantity: d("30")}))
	assertDec(t, "70", l.OnHand)
	assertDec(t, "70", l.Available)
	assertInvariants(t, l)
}

func TestApplyMovement_RechazoNoMuta(t *testing.T) {
	l := entity.NewStockLevel("prod-1", "wh-1")
	require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("10")}))
	require.True(t, inventory.Reserve(l, d("4")))
	before := *l

	for _, typ := range []entity.MovementType{entity.MovementTypeOUT, entity.MovementTypeTRANSFER} {
		err := inventory.ApplyMovement(l, &entity.StockMovement{Type: typ, Quantity: d("7")})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, before, *l)
	}
	err := inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeADJUSTMENT, Quantity: d("-7")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before, *l)
}

func TestApplyMovement_TransferQuedaEnTransito(t *testing.T) {
	l := entity.NewStockLevel("prod-1", "wh-1")
	require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("10")}))
	require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeTRANSFER, Quantity: d("6")}))
	assertDec(t, "4", l.OnHand)
	assertDec(t, "6", l.InTransit)
	assertInvariants(t, l)
}

func TestReserveRelease(t *testing.T) {
	l := entity.NewStockLevel("prod-1", "wh-1")
	require.NoError(t, inventory.ApplyMovement(l, &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("100")}))

	assert.True(t, inventory.Reserve(l, d("40")))
	assertDec(t, "60", l.Available)
	assertDec(t, "40", l.Reserved)

	assert.False(t, inventory.Reserve(l, d("61")))
	assertDec(t, "60", l.Available)

	inventory.Release(l, d("100"))
	assertDec(t, "0", l.Reserved)
	assertDec(t, "100", l.Available)
	assertInvariants(t, l)
}

func TestNeedsReorder_SinPuntoNoMarca(t *testing.T) {
	l := entity.NewStockLevel("prod-1", "wh-1")
	inventory.Recalculate(l)
	assert.False(t, l.NeedsReorder)

	rp := d("10")
	require.NoError(t, inventory.ApplyReorderSettings(l, entity.ReorderSettings{ReorderPoint: &rp}))
	assert.True(t, l.NeedsReorder)

	neg := d("-1")
	assert.ErrorIs(t, inventory.ApplyReorderSettings(l, entity.ReorderSettings{MaxStock: &neg}), domain.ErrInvalidInput)
	assertDec(t, "10", l.ReorderPoint)
}

func TestClassifyUrgency_Bandas(t *testing.T) {
	cases := map[string]entity.Urgency{
		"0":    entity.UrgencyCritical,
		"0.25": entity.UrgencyCritical,
		"0.26": entity.UrgencyHigh,
		"0.5":  entity.UrgencyHigh,
		"0.6":  entity.UrgencyMedium,
		"0.85": entity.UrgencyMedium,
		"0.86": entity.UrgencyLow,
		"1":    entity.UrgencyLow,
	}
	for ratio, want := range cases {
		assert.Equal(t, want, inventory.ClassifyUrgency(d(ratio)), "ratio %s", ratio)
	}
}

func TestSuggestedQuantity(t *testing.T) {
	l := &entity.StockLevel{OnHand: d("5"), ReorderPoint: d("100")}
	assertDec(t, "100", inventory.SuggestedQuantity(l))

	l.ReorderQuantity = d("50")
	assertDec(t, "50", inventory.SuggestedQuantity(l))

	l.MaxStock = d("300")
	assertDec(t, "295", inventory.SuggestedQuantity(l))

	l.ReorderQuantity = d("400")
	assertDec(t, "400", inventory.SuggestedQuantity(l))
}

func TestClassifyABC_Particion(t *testing.T) {
	out := inventory.ClassifyABC([]inventory.ABCInput{
		{ProductID: "p-c", Value: d("200")},
		{ProductID: "p-a1", Value: d("1000")},
		{ProductID: "p-b", Value: d("300")},
		{ProductID: "p-a2", Value: d("500")},
	})
	require.Len(t, out.Classification, 4)

	ids := []string{}
	classes := []entity.ABCClass{}
	for _, it := range out.Classification {
		ids = append(ids, it.ProductID)
		classes = append(classes, it.Class)
	}
	assert.Equal(t, []string{"p-a1", "p-a2", "p-b", "p-c"}, ids)
	assert.Equal(t, []entity.ABCClass{"A", "A", "B", "C"}, classes)
	assertDec(t, "50", out.Classification[0].CumulativePercent)
	assertDec(t, "100", out.Classification[3].CumulativePercent)

	s := out.Summary
	assert.Equal(t, 4, s.A.Count+s.B.Count+s.C.Count)
	assertDec(t, "1500", s.A.Value)
	assertDec(t, "300", s.B.Value)
	assertDec(t, "200", s.C.Value)
}

func TestClassifyABC_EmpateOrdenaPorProducto(t *testing.T) {
	out := inventory.ClassifyABC([]inventory.ABCInput{
		{ProductID: "z", Value: d("10")},
		{ProductID: "a", Value: d("10")},
	})
	assert.Equal(t, "a", out.Classification[0].ProductID)
	assert.Equal(t, "z", out.Classification[1].ProductID)

	empty := inventory.ClassifyABC(nil)
	assert.Empty(t, empty.Classification)
}

func TestVariance(t *testing.T) {
	v := inventory.Variance(d("100"), d("80"))
	assertDec(t, "-20", v)
	pct := inventory.VariancePercent(v, d("100"))
	assertDec(t, "-20", pct)
	assert.True(t, inventory.IsSignificant(pct, inventory.DefaultVarianceThreshold))

	assertDec(t, "0", inventory.VariancePercent(d("5"), decimal.Zero))
	assertDec(t, "33.33", inventory.VariancePercent(d("1"), d("3")))
	assert.False(t, inventory.IsSignificant(d("-9.99"), inventory.DefaultVarianceThreshold))
}

func TestAccuracy(t *testing.T) {
	results := []*entity.CountResult{
		{VariancePercent: d("0")},
		{VariancePercent: d("-20")},
		{VariancePercent: d("5")},
		{VariancePercent: d("10")},
	}
	assertDec(t, "50", inventory.Accuracy(results, inventory.DefaultVarianceThreshold))
	assertDec(t, "100", inventory.Accuracy(nil, inventory.DefaultVarianceThreshold))
}
