package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

// StockLevelUseCase consultas sobre niveles de stock y configuración de umbrales de reorden.
type StockLevelUseCase struct {
	txRunner  TxRunner
	levelRepo repository.StockLevelRepository
	locks     *KeyLocker
}

// NewStockLevelUseCase construye el caso de uso.
func NewStockLevelUseCase(txRunner TxRunner, levelRepo repository.StockLevelRepository, locks *KeyLocker) *StockLevelUseCase {
	return &StockLevelUseCase{txRunner: txRunner, levelRepo: levelRepo, locks: locks}
}

// GetStockLevel devuelve el nivel o domain.ErrStockLevelNotFound.
func (uc *StockLevelUseCase) GetStockLevel(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	level, err := uc.levelRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrStockLevelNotFound
	}
	return level, nil
}

// ListStockLevels niveles de una bodega (incluye filas en cero).
func (uc *StockLevelUseCase) ListStockLevels(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.levelRepo.ListByWarehouse(ctx, warehouseID)
}

// ListAllStockLevels niveles de todas las bodegas.
func (uc *StockLevelUseCase) ListAllStockLevels(ctx context.Context) ([]*entity.StockLevel, error) {
	return uc.levelRepo.ListAll(ctx)
}

// UpdateReorderSettings mezcla los umbrales provistos y recalcula NeedsReorder.
// Si el nivel no existe se crea en cero para poder configurar antes de recibir stock.
func (uc *StockLevelUseCase) UpdateReorderSettings(ctx context.Context, productID, warehouseID string, settings entity.ReorderSettings) (*entity.StockLevel, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	unlock := uc.locks.Lock(entity.StockKey{ProductID: productID, WarehouseID: warehouseID}.String())
	defer unlock()

	var out *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(_ repository.StockMovementRepository, levelRepo repository.StockLevelRepository) error {
		level, err := levelRepo.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		if level == nil {
			level = entity.NewStockLevel(productID, warehouseID)
		}
		next := level.Clone()
		if err := inventory.ApplyReorderSettings(next, settings); err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		if err := levelRepo.Upsert(ctx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
