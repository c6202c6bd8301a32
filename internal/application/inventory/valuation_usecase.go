package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

// ValuationUseCase valorización (promedio ponderado) y clasificación ABC sobre los niveles de stock.
type ValuationUseCase struct {
	levelRepo repository.StockLevelRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(levelRepo repository.StockLevelRepository) *ValuationUseCase {
	return &ValuationUseCase{levelRepo: levelRepo}
}

// ValuationQuery WarehouseID vacío = todas las bodegas (con desglose). Method vacío = AVERAGE.
type ValuationQuery struct {
	WarehouseID string
	Method      string
}

// CalculateValuation suma unidades y valor (onHand * costo promedio) de los niveles en alcance.
func (uc *ValuationUseCase) CalculateValuation(ctx context.Context, q ValuationQuery) (*entity.Valuation, error) {
	if q.Method != "" && q.Method != entity.ValuationMethodAverage {
		return nil, domain.ErrUnsupportedValuationMethod
	}
	levels, err := uc.levels(ctx, q.WarehouseID)
	if err != nil {
		return nil, err
	}

	out := &entity.Valuation{
		ValuationTotals: zeroTotals(),
		ValuationMethod: entity.ValuationMethodAverage,
	}
	byWarehouse := make(map[string]*entity.WarehouseValuation)
	for _, level := range levels {
		addToTotals(&out.ValuationTotals, level)
		if q.WarehouseID != "" {
			continue
		}
		wv, ok := byWarehouse[level.WarehouseID]
		if !ok {
			wv = &entity.WarehouseValuation{WarehouseID: level.WarehouseID, ValuationTotals: zeroTotals()}
			byWarehouse[level.WarehouseID] = wv
		}
		addToTotals(&wv.ValuationTotals, level)
	}

	if q.WarehouseID == "" {
		out.ByWarehouse = make([]entity.WarehouseValuation, 0, len(byWarehouse))
		for _, wv := range byWarehouse {
			out.ByWarehouse = append(out.ByWarehouse, *wv)
		}
		sort.Slice(out.ByWarehouse, func(i, j int) bool {
			return out.ByWarehouse[i].WarehouseID < out.ByWarehouse[j].WarehouseID
		})
	}
	return out, nil
}

// PerformABCAnalysis clasifica por valor de inventario. Con WarehouseID vacío se suman
// los valores del producto en todas las bodegas. Solo entran productos con valor > 0.
func (uc *ValuationUseCase) PerformABCAnalysis(ctx context.Context, warehouseID string) (*entity.ABCAnalysis, error) {
	levels, err := uc.levels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	valueByProduct := make(map[string]decimal.Decimal)
	for _, level := range levels {
		if !level.OnHand.IsPositive() {
			continue
		}
		v := inventory.Value(level.OnHand, level.UnitCost)
		if !v.IsPositive() {
			continue
		}
		valueByProduct[level.ProductID] = valueByProduct[level.ProductID].Add(v)
	}

	items := make([]inventory.ABCInput, 0, len(valueByProduct))
	for productID, v := range valueByProduct {
		items = append(items, inventory.ABCInput{ProductID: productID, Value: v})
	}
	out := inventory.ClassifyABC(items)
	return &out, nil
}

func (uc *ValuationUseCase) levels(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	if warehouseID == "" {
		return uc.levelRepo.ListAll(ctx)
	}
	return uc.levelRepo.ListByWarehouse(ctx, warehouseID)
}

func zeroTotals() entity.ValuationTotals {
	return entity.ValuationTotals{TotalUnits: decimal.Zero, TotalValue: decimal.Zero}
}

func addToTotals(t *entity.ValuationTotals, level *entity.StockLevel) {
	t.TotalUnits = t.TotalUnits.Add(level.OnHand)
	t.TotalValue = t.TotalValue.Add(inventory.Value(level.OnHand, level.UnitCost))
	if level.OnHand.IsPositive() {
		t.TotalItems++
	}
}
