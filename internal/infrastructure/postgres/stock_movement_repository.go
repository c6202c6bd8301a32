package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, warehouse_id, type, quantity, unit_cost, total_cost,
	destination_warehouse_id, reason, performed_by, ts`

// StockMovementRepo libro mayor sobre PostgreSQL (solo inserción; usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, string(m.Type), m.Quantity, m.UnitCost, m.TotalCost,
		nullString(m.DestinationWarehouseID), nullString(m.Reason), nullString(m.PerformedBy), m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var unitCost decimal.NullDecimal
	var dest, reason, performedBy *string
	if err := row.Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity, &unitCost, &m.TotalCost,
		&dest, &reason, &performedBy, &m.Timestamp,
	); err != nil {
		return nil, err
	}
	m.UnitCost = decimalPtr(unitCost)
	m.DestinationWarehouseID = derefString(dest)
	m.Reason = derefString(reason)
	m.PerformedBy = derefString(performedBy)
	return &m, nil
}

// GetByID obtiene un movimiento por ID o nil.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct movimientos del producto en orden de registro, con filtros opcionales.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, filter entity.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, string(filter.Type))
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *filter.To)
	}
	query += " ORDER BY ts, seq"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
