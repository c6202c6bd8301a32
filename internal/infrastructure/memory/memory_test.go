package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/memory"
)

func TestTxRunner_CommitYRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	levels := memory.NewStockLevelRepository(store)
	movs := memory.NewStockMovementRepository(store)

	boom := errors.New("boom")
	err := runner.Run(ctx, func(movRepo repository.StockMovementRepository, levelRepo repository.StockLevelRepository) error {
		l := entity.NewStockLevel("prod-1", "wh-1")
		l.OnHand = decimal.NewFromInt(5)
		require.NoError(t, levelRepo.Upsert(ctx, l))

		// Dentro de la tx se ve lo pendiente
		got, err := levelRepo.Get(ctx, "prod-1", "wh-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m-1", ProductID: "prod-1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := levels.Get(ctx, "prod-1", "wh-1")
	require.NoError(t, err)
	assert.Nil(t, got, "rollback no debe dejar el nivel")
	m, _ := movs.GetByID(ctx, "m-1")
	assert.Nil(t, m)

	err = runner.Run(ctx, func(movRepo repository.StockMovementRepository, levelRepo repository.StockLevelRepository) error {
		require.NoError(t, levelRepo.Upsert(ctx, entity.NewStockLevel("prod-1", "wh-1")))
		return movRepo.Create(ctx, &entity.StockMovement{ID: "m-2", ProductID: "prod-1"})
	})
	require.NoError(t, err)
	got, _ = levels.Get(ctx, "prod-1", "wh-1")
	assert.NotNil(t, got)
	m, _ = movs.GetByID(ctx, "m-2")
	assert.NotNil(t, m)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewTxRunner(memory.NewStore()).Run(ctx, func(repository.StockMovementRepository, repository.StockLevelRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockLevelRepo_ListOrdenado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewStockLevelRepository(store)
	for _, k := range [][2]string{{"p-b", "wh-2"}, {"p-c", "wh-1"}, {"p-a", "wh-1"}} {
		require.NoError(t, repo.Upsert(ctx, entity.NewStockLevel(k[0], k[1])))
	}

	wh1, err := repo.ListByWarehouse(ctx, "wh-1")
	require.NoError(t, err)
	require.Len(t, wh1, 2)
	assert.Equal(t, "p-a", wh1[0].ProductID)
	assert.Equal(t, "p-c", wh1[1].ProductID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "wh-2", all[2].WarehouseID)

	// Las copias devueltas no alteran el store
	wh1[0].OnHand = decimal.NewFromInt(99)
	again, _ := repo.Get(ctx, "p-a", "wh-1")
	assert.True(t, again.OnHand.IsZero())
}

func TestStockMovementRepo_FiltrosYOrden(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStockMovementRepository(memory.NewStore())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "m3", ProductID: "p", WarehouseID: "wh-1", Type: entity.MovementTypeOUT, Timestamp: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p", WarehouseID: "wh-1", Type: entity.MovementTypeIN, Timestamp: base}))
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "m2", ProductID: "p", WarehouseID: "wh-2", Type: entity.MovementTypeIN, Timestamp: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.StockMovement{ID: "x", ProductID: "otro", Timestamp: base}))

	all, err := repo.ListByProduct(ctx, "p", entity.MovementFilter{})
	require.NoError(t, err)
	ids := []string{}
	for _, m := range all {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m1", "m2", "m3"}, ids)

	ins, _ := repo.ListByProduct(ctx, "p", entity.MovementFilter{Type: entity.MovementTypeIN})
	assert.Len(t, ins, 2)

	from, to := base.Add(30*time.Minute), base.Add(90*time.Minute)
	ranged, _ := repo.ListByProduct(ctx, "p", entity.MovementFilter{From: &from, To: &to})
	require.Len(t, ranged, 1)
	assert.Equal(t, "m2", ranged[0].ID)

	wh1, _ := repo.ListByProduct(ctx, "p", entity.MovementFilter{WarehouseID: "wh-1"})
	assert.Len(t, wh1, 2)
}

func TestBatchRepo_DuplicadoYVencimientos(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewBatchRepository(memory.NewStore())
	now := time.Now().UTC()
	in10 := now.AddDate(0, 0, 10)
	in3 := now.AddDate(0, 0, 3)

	require.NoError(t, repo.Create(ctx, &entity.Batch{ID: "b1", BatchNumber: "L-1", ProductID: "p", WarehouseID: "wh", ExpiryDate: &in10}))
	require.NoError(t, repo.Create(ctx, &entity.Batch{ID: "b2", BatchNumber: "L-2", ProductID: "p", WarehouseID: "wh", ExpiryDate: &in3}))
	require.NoError(t, repo.Create(ctx, &entity.Batch{ID: "b3", BatchNumber: "L-3", ProductID: "p", WarehouseID: "wh"}))
	// Mismo número en otra bodega es válido
	require.NoError(t, repo.Create(ctx, &entity.Batch{ID: "b4", BatchNumber: "L-1", ProductID: "p", WarehouseID: "wh-2"}))

	err := repo.Create(ctx, &entity.Batch{ID: "b5", BatchNumber: "L-1", ProductID: "p", WarehouseID: "wh"})
	assert.ErrorIs(t, err, domain.ErrDuplicateBatch)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	exp, err := repo.ListExpiring(ctx, now, now.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, exp, 2)
	assert.Equal(t, "b2", exp[0].ID)
	assert.Equal(t, "b1", exp[1].ID)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Batch{ID: "nope"}), domain.ErrNotFound)
}

func TestCycleCountRepo_Resultados(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCycleCountRepository(memory.NewStore())
	require.NoError(t, repo.CreatePlan(ctx, &entity.CycleCountPlan{ID: "plan-1", WarehouseID: "wh", AssignedTo: []string{"u1"}}))

	p, err := repo.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	p.AssignedTo[0] = "mutado"
	again, _ := repo.GetPlan(ctx, "plan-1")
	assert.Equal(t, "u1", again.AssignedTo[0])

	require.NoError(t, repo.CreateResult(ctx, &entity.CountResult{ID: "r2", PlanID: "plan-1"}))
	require.NoError(t, repo.CreateResult(ctx, &entity.CountResult{ID: "r1", PlanID: "plan-1"}))
	require.NoError(t, repo.CreateResult(ctx, &entity.CountResult{ID: "r3", PlanID: "otro"}))

	res, err := repo.ListResults(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "r2", res[0].ID)
	assert.Equal(t, "r1", res[1].ID)

	missing, err := repo.GetResult(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
