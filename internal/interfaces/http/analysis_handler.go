package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ops/internal/application/dto"
	"github.com/jhoicas/inventory-ops/internal/application/inventory"
)

// AnalysisHandler reposición, valorización y ABC (solo lectura).
type AnalysisHandler struct {
	replenishment *inventory.ReplenishmentUseCase
	valuation     *inventory.ValuationUseCase
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(replenishment *inventory.ReplenishmentUseCase, valuation *inventory.ValuationUseCase) *AnalysisHandler {
	return &AnalysisHandler{replenishment: replenishment, valuation: valuation}
}

// ReorderSuggestions GET /api/inventory/reorder-suggestions?warehouse_id=
// Ordenadas por urgencia (CRITICAL primero).
func (h *AnalysisHandler) ReorderSuggestions(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReorderSuggestions(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// Valuation GET /api/inventory/valuation?warehouse_id=&method=AVERAGE
func (h *AnalysisHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.valuation.CalculateValuation(c.UserContext(), inventory.ValuationQuery{
		WarehouseID: c.Query("warehouse_id"),
		Method:      c.Query("method"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ABCAnalysis GET /api/inventory/abc-analysis?warehouse_id=
func (h *AnalysisHandler) ABCAnalysis(c *fiber.Ctx) error {
	out, err := h.valuation.PerformABCAnalysis(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
