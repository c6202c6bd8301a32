package memory

import (
	"context"

	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre repos que acumulan escrituras y las aplican juntas al final.
// Si fn falla no se aplica nada.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// txState escrituras pendientes de una transacción.
type txState struct {
	levels    map[entity.StockKey]*entity.StockLevel
	movements []*entity.StockMovement
}

// Run ejecuta fn y hace "commit" de los cambios pendientes si no hubo error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txState{levels: make(map[entity.StockKey]*entity.StockLevel)}
	movRepo := &StockMovementRepo{store: r.store, tx: tx}
	levelRepo := &StockLevelRepo{store: r.store, tx: tx}

	if err := fn(movRepo, levelRepo); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, level := range tx.levels {
		s.levels[key] = level
	}
	for _, m := range tx.movements {
		s.movByID[m.ID] = len(s.movements)
		s.movements = append(s.movements, m)
	}
	return nil
}
