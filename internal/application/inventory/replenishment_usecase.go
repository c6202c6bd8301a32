package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

// ReplenishmentUseCase genera sugerencias de compra para una bodega a partir de los niveles de stock.
type ReplenishmentUseCase struct {
	levelRepo repository.StockLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(levelRepo repository.StockLevelRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{levelRepo: levelRepo}
}

// GenerateReorderSuggestions devuelve los productos con punto de reorden > 0 y onHand <= punto,
// ordenados por urgencia (CRITICAL primero) y luego por ratio onHand/punto ascendente.
func (uc *ReplenishmentUseCase) GenerateReorderSuggestions(ctx context.Context, warehouseID string) ([]entity.ReorderSuggestion, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	// 1. Niveles de la bodega
	levels, err := uc.levelRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	// 2. Solo los que están en o bajo el punto de reorden
	suggestions := make([]entity.ReorderSuggestion, 0, len(levels))
	for _, level := range levels {
		if !inventory.QualifiesForReorder(level) {
			continue
		}
		suggestions = append(suggestions, inventory.BuildSuggestion(level))
	}

	// 3. Ordenar: urgencia, ratio y producto (determinismo)
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		if !a.StockRatio.Equal(b.StockRatio) {
			return a.StockRatio.LessThan(b.StockRatio)
		}
		return a.ProductID < b.ProductID
	})

	return suggestions, nil
}
