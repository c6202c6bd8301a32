package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ops/internal/application/dto"
	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/events"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventory-ops/internal/interfaces/http"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "user-42"

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	levelRepo := memory.NewStockLevelRepository(store)
	locks := inventory.NewKeyLocker()
	pub := events.NewLogPublisher(log)

	ledger := inventory.NewRegisterMovementUseCase(runner, memory.NewStockMovementRepository(store), locks, pub, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterMovement: ledger,
		StockLevels:      inventory.NewStockLevelUseCase(runner, levelRepo, locks),
		Reservations:     inventory.NewReservationUseCase(runner, locks, log),
		Batches:          inventory.NewBatchUseCase(memory.NewBatchRepository(store)),
		Replenishment:    inventory.NewReplenishmentUseCase(levelRepo),
		Valuation:        inventory.NewValuationUseCase(levelRepo),
		CycleCounts:      inventory.NewCycleCountUseCase(memory.NewCycleCountRepository(store), levelRepo, ledger, locks, pub, log, decimal.Zero),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderUserID, testUser)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func receive(t *testing.T, app *fiber.App, productID, warehouseID string, qty, cost int64) {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "type": "IN",
		"quantity": qty, "unit_cost": cost,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_RegistroYErrores(t *testing.T) {
	app := buildTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "p1", "warehouse_id": "w1", "type": "IN", "quantity": "100", "unit_cost": "50",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	mov := decode[entity.StockMovement](t, body)
	assert.Equal(t, testUser, mov.PerformedBy)
	assert.True(t, mov.TotalCost.Equal(decimal.NewFromInt(5000)))

	status, body = do(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "p1", "warehouse_id": "w1", "type": "OUT", "quantity": 1000,
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, body).Code)

	status, body = do(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "p1", "warehouse_id": "w1", "type": "IN", "quantity": 0,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, body).Code)

	status, _ = do(t, app, http.MethodGet, "/api/inventory/products/p1/movements?from=ayer", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/inventory/products/p1/movements?type=IN", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[dto.ListResponse[entity.StockMovement]](t, body)
	assert.Equal(t, 1, list.Total)
}

func TestLevels_ConsultaYReorden(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "p1", "w1", 10, 5)

	status, body := do(t, app, http.MethodGet, "/api/inventory/levels/w1/p1", nil)
	require.Equal(t, fiber.StatusOK, status)
	level := decode[entity.StockLevel](t, body)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(10)))
	assert.True(t, level.TotalValue.Equal(decimal.NewFromInt(50)))

	status, _ = do(t, app, http.MethodGet, "/api/inventory/levels/w1/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, http.MethodPut, "/api/inventory/levels/w1/p1/reorder-settings", map[string]any{"reorder_point": 25})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.True(t, decode[entity.StockLevel](t, body).NeedsReorder)

	status, body = do(t, app, http.MethodGet, "/api/inventory/reorder-suggestions?warehouse_id=w1", nil)
	require.Equal(t, fiber.StatusOK, status)
	sugg := decode[dto.ListResponse[entity.ReorderSuggestion]](t, body)
	require.Equal(t, 1, sugg.Total)
	assert.Equal(t, entity.UrgencyHigh, sugg.Items[0].Urgency)

	status, body = do(t, app, http.MethodGet, "/api/inventory/levels", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, decode[dto.ListResponse[entity.StockLevel]](t, body).Total)
}

func TestReservations(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "p1", "w1", 100, 1)

	status, body := do(t, app, http.MethodPost, "/api/inventory/reservations", map[string]any{"product_id": "p1", "warehouse_id": "w1", "quantity": 40})
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[dto.ReservationResponse](t, body).OK)

	status, body = do(t, app, http.MethodPost, "/api/inventory/reservations", map[string]any{"product_id": "p1", "warehouse_id": "w1", "quantity": 61})
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, decode[dto.ReservationResponse](t, body).OK)

	status, body = do(t, app, http.MethodPost, "/api/inventory/reservations/release", map[string]any{"product_id": "p1", "warehouse_id": "w1", "quantity": 40})
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[dto.ReservationResponse](t, body).OK)

	status, _ = do(t, app, http.MethodPost, "/api/inventory/reservations", map[string]any{"product_id": "p1", "warehouse_id": "w1", "quantity": -1})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestBatches(t *testing.T) {
	app := buildTestApp(t)
	expiry := time.Now().UTC().AddDate(0, 0, 10)

	req := map[string]any{
		"batch_number": "L-1", "product_id": "p1", "warehouse_id": "w1",
		"quantity": 10, "unit_cost": 2, "expiry_date": expiry,
	}
	status, body := do(t, app, http.MethodPost, "/api/inventory/batches", req)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	batch := decode[entity.Batch](t, body)

	status, _ = do(t, app, http.MethodPost, "/api/inventory/batches", req)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = do(t, app, http.MethodGet, "/api/inventory/batches/expiring?within_days=30", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, decode[dto.ListResponse[entity.Batch]](t, body).Total)

	status, body = do(t, app, http.MethodGet, "/api/inventory/batches/expiring?within_days=5", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, decode[dto.ListResponse[entity.Batch]](t, body).Total)

	status, body = do(t, app, http.MethodPatch, "/api/inventory/batches/"+batch.ID+"/status", map[string]any{"status": "RECALLED"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, entity.BatchStatusRecalled, decode[entity.Batch](t, body).Status)

	status, _ = do(t, app, http.MethodGet, "/api/inventory/batches/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestValuationYABC(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "p1", "w1", 10, 10)
	receive(t, app, "p2", "w1", 1, 10)

	status, body := do(t, app, http.MethodGet, "/api/inventory/valuation?warehouse_id=w1", nil)
	require.Equal(t, fiber.StatusOK, status)
	val := decode[entity.Valuation](t, body)
	assert.True(t, val.TotalValue.Equal(decimal.NewFromInt(110)))

	status, _ = do(t, app, http.MethodGet, "/api/inventory/valuation?method=LIFO", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/inventory/abc-analysis", nil)
	require.Equal(t, fiber.StatusOK, status)
	abc := decode[entity.ABCAnalysis](t, body)
	require.Len(t, abc.Classification, 2)
	assert.Equal(t, "p1", abc.Classification[0].ProductID)
}

func TestCycleCount_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "p1", "w1", 100, 5)

	status, body := do(t, app, http.MethodPost, "/api/inventory/cycle-counts/plans", map[string]any{
		"name": "diario", "warehouse_id": "w1", "frequency": "DAILY", "count_method": "SPOT", "target_accuracy": 95,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	plan := decode[entity.CycleCountPlan](t, body)

	status, body = do(t, app, http.MethodPost, "/api/inventory/cycle-counts/plans/"+plan.ID+"/results", map[string]any{
		"product_id": "p1", "counted_quantity": 80,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	res := decode[entity.CountResult](t, body)
	assert.Equal(t, testUser, res.CountedBy)
	assert.True(t, res.Variance.Equal(decimal.NewFromInt(-20)))

	status, body = do(t, app, http.MethodPost, "/api/inventory/cycle-counts/results/"+res.ID+"/resolve", map[string]any{"resolution": "ADJUSTMENT"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	resolved := decode[entity.CountResult](t, body)
	assert.NotEmpty(t, resolved.AdjustmentID)

	status, _ = do(t, app, http.MethodPost, "/api/inventory/cycle-counts/results/"+res.ID+"/resolve", map[string]any{"resolution": "ACCEPTED"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = do(t, app, http.MethodGet, "/api/inventory/levels/w1/p1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[entity.StockLevel](t, body).OnHand.Equal(decimal.NewFromInt(80)))

	status, body = do(t, app, http.MethodPost, "/api/inventory/cycle-counts/plans/"+plan.ID+"/complete", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, entity.PlanStatusCompleted, decode[entity.CycleCountPlan](t, body).Status)

	status, _ = do(t, app, http.MethodPost, "/api/inventory/cycle-counts/plans/"+plan.ID+"/cancel", nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, http.MethodGet, "/api/inventory/cycle-counts/plans/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestActorMiddleware_RequestID(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/levels", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/inventory/levels", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(apphttp.HeaderRequestID))
}
