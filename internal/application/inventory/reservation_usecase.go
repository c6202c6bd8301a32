package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// ReservationUseCase aparta y libera stock disponible sin tocar on-hand.
type ReservationUseCase struct {
	txRunner TxRunner
	locks    *KeyLocker
	log      *logger.Logger
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(txRunner TxRunner, locks *KeyLocker, log *logger.Logger) *ReservationUseCase {
	return &ReservationUseCase{txRunner: txRunner, locks: locks, log: log}
}

// Reserve devuelve false (sin mutar) si quantity supera el disponible o el nivel no existe.
func (uc *ReservationUseCase) Reserve(ctx context.Context, productID, warehouseID string, quantity decimal.Decimal) (bool, error) {
	ctx, span := tracer.Start(ctx, "inventory.Reserve")
	defer span.End()
	span.SetAttributes(
		attribute.String("inventory.product_id", productID),
		attribute.String("inventory.warehouse_id", warehouseID),
		attribute.String("inventory.quantity", quantity.String()),
	)

	reserved, err := uc.mutate(ctx, productID, warehouseID, quantity, func(level *entity.StockLevel) bool {
		return inventory.Reserve(level, quantity)
	})
	span.SetAttributes(attribute.Bool("inventory.reserved", reserved))
	if err == nil && !reserved {
		uc.log.Debug().
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Str("quantity", quantity.String()).
			Msg("reserva rechazada por disponible insuficiente")
	}
	return reserved, err
}

// Release libera hasta quantity (reserved nunca queda negativo).
// Devuelve false si no existe nivel para la clave.
func (uc *ReservationUseCase) Release(ctx context.Context, productID, warehouseID string, quantity decimal.Decimal) (bool, error) {
	ctx, span := tracer.Start(ctx, "inventory.Release")
	defer span.End()
	span.SetAttributes(
		attribute.String("inventory.product_id", productID),
		attribute.String("inventory.warehouse_id", warehouseID),
		attribute.String("inventory.quantity", quantity.String()),
	)

	return uc.mutate(ctx, productID, warehouseID, quantity, func(level *entity.StockLevel) bool {
		inventory.Release(level, quantity)
		return true
	})
}

// mutate aplica fn sobre una copia del nivel bajo lock; solo persiste si fn devuelve true.
func (uc *ReservationUseCase) mutate(
	ctx context.Context,
	productID, warehouseID string,
	quantity decimal.Decimal,
	fn func(level *entity.StockLevel) bool,
) (bool, error) {
	if productID == "" || warehouseID == "" {
		return false, domain.ErrInvalidInput
	}
	if !quantity.IsPositive() {
		return false, domain.ErrInvalidQuantity
	}
	unlock := uc.locks.Lock(entity.StockKey{ProductID: productID, WarehouseID: warehouseID}.String())
	defer unlock()

	applied := false
	err := uc.txRunner.Run(ctx, func(_ repository.StockMovementRepository, levelRepo repository.StockLevelRepository) error {
		level, err := levelRepo.GetForUpdate(ctx, productID, warehouseID)
		if err != nil || level == nil {
			return err
		}
		next := level.Clone()
		if !fn(next) {
			return nil
		}
		next.UpdatedAt = time.Now().UTC()
		if err := levelRepo.Upsert(ctx, next); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}
