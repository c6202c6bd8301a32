package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación en memoria de StockLevelRepository.
// Fuera de una transacción escribe directo al store.
type StockLevelRepo struct {
	store *Store
	tx    *txState
}

// NewStockLevelRepository construye el repositorio.
func NewStockLevelRepository(store *Store) *StockLevelRepo {
	return &StockLevelRepo{store: store}
}

// Get devuelve una copia del nivel o nil si no existe.
func (r *StockLevelRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	key := entity.StockKey{ProductID: productID, WarehouseID: warehouseID}
	if r.tx != nil {
		if l, ok := r.tx.levels[key]; ok {
			return l.Clone(), nil
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if l, ok := r.store.levels[key]; ok {
		return l.Clone(), nil
	}
	return nil, nil
}

// GetForUpdate igual que Get: la exclusión por clave la da el KeyLocker del motor.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLevel, error) {
	return r.Get(ctx, productID, warehouseID)
}

// Upsert guarda una copia del nivel.
func (r *StockLevelRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	c := level.Clone()
	if r.tx != nil {
		r.tx.levels[c.Key()] = c
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.levels[c.Key()] = c
	return nil
}

// ListByWarehouse niveles confirmados de la bodega ordenados por producto.
func (r *StockLevelRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	return r.list(func(l *entity.StockLevel) bool { return l.WarehouseID == warehouseID }), nil
}

// ListAll niveles confirmados ordenados por bodega y producto.
func (r *StockLevelRepo) ListAll(_ context.Context) ([]*entity.StockLevel, error) {
	return r.list(func(*entity.StockLevel) bool { return true }), nil
}

func (r *StockLevelRepo) list(keep func(*entity.StockLevel) bool) []*entity.StockLevel {
	r.store.mu.RLock()
	out := make([]*entity.StockLevel, 0, len(r.store.levels))
	for _, l := range r.store.levels {
		if keep(l) {
			out = append(out, l.Clone())
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseID != out[j].WarehouseID {
			return out[i].WarehouseID < out[j].WarehouseID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
