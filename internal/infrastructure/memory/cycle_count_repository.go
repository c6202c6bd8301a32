package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

// CycleCountRepo implementación en memoria de planes y resultados de conteo.
type CycleCountRepo struct {
	store *Store
}

// NewCycleCountRepository construye el repositorio.
func NewCycleCountRepository(store *Store) *CycleCountRepo {
	return &CycleCountRepo{store: store}
}

func cloneResult(r *entity.CountResult) *entity.CountResult {
	c := *r
	return &c
}

func (r *CycleCountRepo) CreatePlan(_ context.Context, plan *entity.CycleCountPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.plans[plan.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.plans[plan.ID] = plan.Clone()
	return nil
}

func (r *CycleCountRepo) GetPlan(_ context.Context, id string) (*entity.CycleCountPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.plans[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *CycleCountRepo) UpdatePlan(_ context.Context, plan *entity.CycleCountPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.plans[plan.ID]; !ok {
		return domain.ErrPlanNotFound
	}
	r.store.plans[plan.ID] = plan.Clone()
	return nil
}

// ListPlans planes por próxima fecha de conteo; warehouseID vacío = todos.
func (r *CycleCountRepo) ListPlans(_ context.Context, warehouseID string) ([]*entity.CycleCountPlan, error) {
	r.store.mu.RLock()
	out := make([]*entity.CycleCountPlan, 0, len(r.store.plans))
	for _, p := range r.store.plans {
		if warehouseID == "" || p.WarehouseID == warehouseID {
			out = append(out, p.Clone())
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextCountDate.Equal(out[j].NextCountDate) {
			return out[i].NextCountDate.Before(out[j].NextCountDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CycleCountRepo) CreateResult(_ context.Context, result *entity.CountResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.results[result.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.results[result.ID] = cloneResult(result)
	r.store.resultIDs = append(r.store.resultIDs, result.ID)
	return nil
}

func (r *CycleCountRepo) GetResult(_ context.Context, id string) (*entity.CountResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	res, ok := r.store.results[id]
	if !ok {
		return nil, nil
	}
	return cloneResult(res), nil
}

func (r *CycleCountRepo) UpdateResult(_ context.Context, result *entity.CountResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.results[result.ID]; !ok {
		return domain.ErrCountResultNotFound
	}
	r.store.results[result.ID] = cloneResult(result)
	return nil
}

// ListResults resultados del plan en orden de registro.
func (r *CycleCountRepo) ListResults(_ context.Context, planID string) ([]*entity.CountResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.CountResult, 0)
	for _, id := range r.store.resultIDs {
		if res := r.store.results[id]; res.PlanID == planID {
			out = append(out, cloneResult(res))
		}
	}
	return out, nil
}
