package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del libro mayor (solo inserción).
type StockMovementRepo struct {
	store *Store
	tx    *txState
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

// Create agrega el movimiento (copia).
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	c := *m
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, &c)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movByID[c.ID] = len(r.store.movements)
	r.store.movements = append(r.store.movements, &c)
	return nil
}

// GetByID devuelve el movimiento o nil.
func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i, ok := r.store.movByID[id]
	if !ok {
		return nil, nil
	}
	c := *r.store.movements[i]
	return &c, nil
}

// ListByProduct movimientos confirmados del producto en orden cronológico (estable por inserción).
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, filter entity.MovementFilter) ([]*entity.StockMovement, error) {
	r.store.mu.RLock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.store.movements {
		if m.ProductID == productID && filter.Matches(m) {
			c := *m
			out = append(out, &c)
		}
	}
	r.store.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
