package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, batch_number, product_id, warehouse_id, quantity, available_quantity,
	received_date, manufacturing_date, expiry_date, unit_cost, quality_checked, status, created_at, updated_at`

// BatchRepo lotes sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta el lote; el UNIQUE (producto, bodega, número) se traduce a domain.ErrDuplicateBatch.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductID, b.WarehouseID, b.Quantity, b.AvailableQuantity,
		b.ReceivedDate, b.ManufacturingDate, b.ExpiryDate, b.UnitCost, b.QualityChecked,
		string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBatch
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	if err := row.Scan(
		&b.ID, &b.BatchNumber, &b.ProductID, &b.WarehouseID, &b.Quantity, &b.AvailableQuantity,
		&b.ReceivedDate, &b.ManufacturingDate, &b.ExpiryDate, &b.UnitCost, &b.QualityChecked,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID obtiene un lote o nil.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update guarda cantidades, calidad y estado.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET available_quantity = $2, quality_checked = $3, status = $4,
			expiry_date = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.AvailableQuantity, b.QualityChecked, string(b.Status), b.ExpiryDate, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// ListByProduct lotes del producto en la bodega por fecha de recepción.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID, warehouseID string) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY received_date, batch_number`, productID, warehouseID)
}

// ListExpiring lotes con vencimiento en [from, to] de todas las bodegas.
func (r *BatchRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches
		WHERE expiry_date IS NOT NULL AND expiry_date >= $1 AND expiry_date <= $2
		ORDER BY expiry_date, id`, from, to)
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
