package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación en memoria de BatchRepository.
type BatchRepo struct {
	store *Store
}

// NewBatchRepository construye el repositorio.
func NewBatchRepository(store *Store) *BatchRepo {
	return &BatchRepo{store: store}
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	c := *b
	return &c
}

// Create guarda el lote; número duplicado para producto+bodega -> domain.ErrDuplicateBatch.
func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	key := batchKey{productID: b.ProductID, warehouseID: b.WarehouseID, number: b.BatchNumber}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.batchNumbers[key]; ok {
		return domain.ErrDuplicateBatch
	}
	r.store.batches[b.ID] = cloneBatch(b)
	r.store.batchNumbers[key] = b.ID
	return nil
}

// GetByID devuelve el lote o nil.
func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	return cloneBatch(b), nil
}

// Update reemplaza el lote existente.
func (r *BatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.batches[b.ID]; !ok {
		return domain.ErrBatchNotFound
	}
	r.store.batches[b.ID] = cloneBatch(b)
	return nil
}

// ListByProduct lotes del producto en la bodega, por fecha de recepción.
func (r *BatchRepo) ListByProduct(_ context.Context, productID, warehouseID string) ([]*entity.Batch, error) {
	out := r.filter(func(b *entity.Batch) bool {
		return b.ProductID == productID && b.WarehouseID == warehouseID
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedDate.Equal(out[j].ReceivedDate) {
			return out[i].ReceivedDate.Before(out[j].ReceivedDate)
		}
		return out[i].BatchNumber < out[j].BatchNumber
	})
	return out, nil
}

// ListExpiring lotes que vencen en [from, to] ordenados por vencimiento.
func (r *BatchRepo) ListExpiring(_ context.Context, from, to time.Time) ([]*entity.Batch, error) {
	out := r.filter(func(b *entity.Batch) bool { return b.ExpiresWithin(from, to) })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(*out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *BatchRepo) filter(keep func(*entity.Batch) bool) []*entity.Batch {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Batch, 0)
	for _, b := range r.store.batches {
		if keep(b) {
			out = append(out, cloneBatch(b))
		}
	}
	return out
}
