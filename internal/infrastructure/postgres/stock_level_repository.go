package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const stockLevelColumns = `product_id, warehouse_id, on_hand, reserved, in_transit, unit_cost,
	reorder_point, reorder_quantity, max_stock, updated_at`

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
// Available, TotalValue y NeedsReorder no se guardan: se recalculan al leer.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var l entity.StockLevel
	if err := row.Scan(
		&l.ProductID, &l.WarehouseID, &l.OnHand, &l.Reserved, &l.InTransit, &l.UnitCost,
		&l.ReorderPoint, &l.ReorderQuantity, &l.MaxStock, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inventory.Recalculate(&l)
	return &l, nil
}

func (r *StockLevelRepo) get(ctx context.Context, query, productID, warehouseID string) (*entity.StockLevel, error) {
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return l, nil
}

// Get obtiene el nivel o nil si no existe.
func (r *StockLevelRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.get(ctx, `SELECT `+stockLevelColumns+`
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
}

// GetForUpdate obtiene el nivel y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.get(ctx, `SELECT `+stockLevelColumns+`
		FROM stock_levels WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
}

// Upsert inserta o reemplaza el nivel (por producto y bodega).
func (r *StockLevelRepo) Upsert(ctx context.Context, l *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (` + stockLevelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET
			on_hand = EXCLUDED.on_hand,
			reserved = EXCLUDED.reserved,
			in_transit = EXCLUDED.in_transit,
			unit_cost = EXCLUDED.unit_cost,
			reorder_point = EXCLUDED.reorder_point,
			reorder_quantity = EXCLUDED.reorder_quantity,
			max_stock = EXCLUDED.max_stock,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		l.ProductID, l.WarehouseID, l.OnHand, l.Reserved, l.InTransit, l.UnitCost,
		l.ReorderPoint, l.ReorderQuantity, l.MaxStock, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByWarehouse niveles de una bodega ordenados por producto.
func (r *StockLevelRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	return r.list(ctx, `SELECT `+stockLevelColumns+`
		FROM stock_levels WHERE warehouse_id = $1 ORDER BY product_id`, warehouseID)
}

// ListAll todos los niveles ordenados por bodega y producto.
func (r *StockLevelRepo) ListAll(ctx context.Context) ([]*entity.StockLevel, error) {
	return r.list(ctx, `SELECT `+stockLevelColumns+`
		FROM stock_levels ORDER BY warehouse_id, product_id`)
}

func (r *StockLevelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockLevel, 0)
	for rows.Next() {
		l, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
