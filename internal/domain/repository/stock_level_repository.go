package repository

import (
	"context"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// StockLevelRepository define el puerto para consultar/actualizar el nivel de stock por bodega+producto.
// Get/GetForUpdate devuelven (nil, nil) si el nivel aún no existe.
type StockLevelRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(ctx context.Context, level *entity.StockLevel) error
	// ListByWarehouse ordenado por producto.
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error)
	// ListAll ordenado por bodega y producto.
	ListAll(ctx context.Context) ([]*entity.StockLevel, error)
}
