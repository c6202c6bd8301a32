package repository

import (
	"context"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// CycleCountRepository define el puerto de persistencia de planes y resultados de conteo.
type CycleCountRepository interface {
	CreatePlan(ctx context.Context, plan *entity.CycleCountPlan) error
	GetPlan(ctx context.Context, id string) (*entity.CycleCountPlan, error)
	UpdatePlan(ctx context.Context, plan *entity.CycleCountPlan) error
	ListPlans(ctx context.Context, warehouseID string) ([]*entity.CycleCountPlan, error)

	CreateResult(ctx context.Context, result *entity.CountResult) error
	GetResult(ctx context.Context, id string) (*entity.CountResult, error)
	UpdateResult(ctx context.Context, result *entity.CountResult) error
	ListResults(ctx context.Context, planID string) ([]*entity.CountResult, error)
}
