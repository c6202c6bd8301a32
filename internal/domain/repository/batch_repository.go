package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia de lotes.
// Create devuelve domain.ErrDuplicateBatch si el número de lote ya existe para producto+bodega.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	ListByProduct(ctx context.Context, productID, warehouseID string) ([]*entity.Batch, error)
	// ListExpiring lotes con fecha de vencimiento en [from, to], ordenados por vencimiento.
	ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Batch, error)
}
