package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ops/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	StockLevels      *inventory.StockLevelUseCase
	Reservations     *inventory.ReservationUseCase
	Batches          *inventory.BatchUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Valuation        *inventory.ValuationUseCase
	CycleCounts      *inventory.CycleCountUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	inv := app.Group("/api/inventory", ActorMiddleware())

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockLevels, deps.Reservations)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/products/:productId/movements", inventoryHandler.ListMovements)
	inv.Get("/levels", inventoryHandler.ListStockLevels)
	inv.Get("/levels/:warehouseId/:productId", inventoryHandler.GetStockLevel)
	inv.Put("/levels/:warehouseId/:productId/reorder-settings", inventoryHandler.UpdateReorderSettings)
	inv.Post("/reservations", inventoryHandler.Reserve)
	inv.Post("/reservations/release", inventoryHandler.Release)

	// /expiring antes de /:id
	batchHandler := NewBatchHandler(deps.Batches)
	inv.Post("/batches", batchHandler.Create)
	inv.Get("/batches", batchHandler.List)
	inv.Get("/batches/expiring", batchHandler.Expiring)
	inv.Get("/batches/:id", batchHandler.GetByID)
	inv.Patch("/batches/:id/status", batchHandler.UpdateStatus)

	analysisHandler := NewAnalysisHandler(deps.Replenishment, deps.Valuation)
	inv.Get("/reorder-suggestions", analysisHandler.ReorderSuggestions)
	inv.Get("/valuation", analysisHandler.Valuation)
	inv.Get("/abc-analysis", analysisHandler.ABCAnalysis)

	counts := inv.Group("/cycle-counts")
	countHandler := NewCycleCountHandler(deps.CycleCounts)
	counts.Post("/plans", countHandler.CreatePlan)
	counts.Get("/plans", countHandler.ListPlans)
	counts.Get("/plans/:id", countHandler.GetPlan)
	counts.Post("/plans/:id/results", countHandler.RecordResult)
	counts.Get("/plans/:id/results", countHandler.ListResults)
	counts.Post("/plans/:id/complete", countHandler.CompletePlan)
	counts.Post("/plans/:id/cancel", countHandler.CancelPlan)
	counts.Post("/results/:id/resolve", countHandler.ResolveVariance)
}
