package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

const (
	planColumns = `id, name, warehouse_id, frequency, next_count_date, count_method, target_accuracy,
	items_to_count, assigned_to, status, accuracy, created_at, updated_at, completed_at`
	resultColumns = `id, plan_id, product_id, location_id, system_quantity, counted_quantity, variance,
	variance_percent, resolved, resolution, adjustment_id, counted_by, ts, resolved_at`
)

// CycleCountRepo planes y resultados de conteo cíclico sobre PostgreSQL.
type CycleCountRepo struct {
	q Querier
}

// NewCycleCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleCountRepository(q Querier) *CycleCountRepo {
	return &CycleCountRepo{q: q}
}

func (r *CycleCountRepo) CreatePlan(ctx context.Context, p *entity.CycleCountPlan) error {
	query := `INSERT INTO cycle_count_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.WarehouseID, string(p.Frequency), p.NextCountDate, string(p.CountMethod),
		p.TargetAccuracy, p.ItemsToCount, assigned(p.AssignedTo), string(p.Status), p.Accuracy,
		p.CreatedAt, p.UpdatedAt, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create cycle count plan: %w", err)
	}
	return nil
}

func scanPlan(row pgx.Row) (*entity.CycleCountPlan, error) {
	var p entity.CycleCountPlan
	var accuracy decimal.NullDecimal
	if err := row.Scan(
		&p.ID, &p.Name, &p.WarehouseID, &p.Frequency, &p.NextCountDate, &p.CountMethod, &p.TargetAccuracy,
		&p.ItemsToCount, &p.AssignedTo, &p.Status, &accuracy, &p.CreatedAt, &p.UpdatedAt, &p.CompletedAt,
	); err != nil {
		return nil, err
	}
	p.Accuracy = decimalPtr(accuracy)
	return &p, nil
}

func (r *CycleCountRepo) GetPlan(ctx context.Context, id string) (*entity.CycleCountPlan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT `+planColumns+` FROM cycle_count_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count plan: %w", err)
	}
	return p, nil
}

func (r *CycleCountRepo) UpdatePlan(ctx context.Context, p *entity.CycleCountPlan) error {
	query := `
		UPDATE cycle_count_plans SET next_count_date = $2, assigned_to = $3, status = $4,
			accuracy = $5, updated_at = $6, completed_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.NextCountDate, assigned(p.AssignedTo), string(p.Status), p.Accuracy, p.UpdatedAt, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

// ListPlans por próxima fecha de conteo; warehouseID vacío = todas las bodegas.
func (r *CycleCountRepo) ListPlans(ctx context.Context, warehouseID string) ([]*entity.CycleCountPlan, error) {
	rows, err := r.q.Query(ctx, `SELECT `+planColumns+` FROM cycle_count_plans
		WHERE ($1 = '' OR warehouse_id = $1)
		ORDER BY next_count_date, id`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list cycle count plans: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CycleCountPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle count plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *CycleCountRepo) CreateResult(ctx context.Context, res *entity.CountResult) error {
	query := `INSERT INTO count_results (` + resultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.PlanID, res.ProductID, nullString(res.LocationID), res.SystemQuantity, res.CountedQuantity,
		res.Variance, res.VariancePercent, res.Resolved, nullString(string(res.Resolution)),
		nullString(res.AdjustmentID), nullString(res.CountedBy), res.Timestamp, res.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("create count result: %w", err)
	}
	return nil
}

func scanResult(row pgx.Row) (*entity.CountResult, error) {
	var res entity.CountResult
	var location, resolution, adjustmentID, countedBy *string
	if err := row.Scan(
		&res.ID, &res.PlanID, &res.ProductID, &location, &res.SystemQuantity, &res.CountedQuantity,
		&res.Variance, &res.VariancePercent, &res.Resolved, &resolution, &adjustmentID, &countedBy,
		&res.Timestamp, &res.ResolvedAt,
	); err != nil {
		return nil, err
	}
	res.LocationID = derefString(location)
	res.Resolution = entity.CountResolution(derefString(resolution))
	res.AdjustmentID = derefString(adjustmentID)
	res.CountedBy = derefString(countedBy)
	return &res, nil
}

func (r *CycleCountRepo) GetResult(ctx context.Context, id string) (*entity.CountResult, error) {
	res, err := scanResult(r.q.QueryRow(ctx, `SELECT `+resultColumns+` FROM count_results WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count result: %w", err)
	}
	return res, nil
}

func (r *CycleCountRepo) UpdateResult(ctx context.Context, res *entity.CountResult) error {
	query := `
		UPDATE count_results SET resolved = $2, resolution = $3, adjustment_id = $4, resolved_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		res.ID, res.Resolved, nullString(string(res.Resolution)), nullString(res.AdjustmentID), res.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update count result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountResultNotFound
	}
	return nil
}

// ListResults resultados del plan en orden de registro.
func (r *CycleCountRepo) ListResults(ctx context.Context, planID string) ([]*entity.CountResult, error) {
	rows, err := r.q.Query(ctx, `SELECT `+resultColumns+` FROM count_results
		WHERE plan_id = $1 ORDER BY ts, id`, planID)
	if err != nil {
		return nil, fmt.Errorf("list count results: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CountResult, 0)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan count result: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// assigned evita NULL en la columna TEXT[] NOT NULL.
func assigned(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
