package repository

import (
	"context"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro mayor (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct devuelve los movimientos en orden de registro (timestamp ascendente).
	ListByProduct(ctx context.Context, productID string, filter entity.MovementFilter) ([]*entity.StockMovement, error)
}
