package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ops/internal/application/dto"
	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// CycleCountHandler planes de conteo, resultados y resolución de varianzas.
type CycleCountHandler struct {
	uc *inventory.CycleCountUseCase
}

// NewCycleCountHandler construye el handler.
func NewCycleCountHandler(uc *inventory.CycleCountUseCase) *CycleCountHandler {
	return &CycleCountHandler{uc: uc}
}

// CreatePlan POST /api/inventory/cycle-counts/plans
func (h *CycleCountHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	plan, err := h.uc.CreatePlan(c.UserContext(), inventory.CreatePlanInput{
		Name:           in.Name,
		WarehouseID:    in.WarehouseID,
		Frequency:      entity.CountFrequency(in.Frequency),
		NextCountDate:  in.NextCountDate,
		CountMethod:    entity.CountMethod(in.CountMethod),
		TargetAccuracy: in.TargetAccuracy,
		ItemsToCount:   in.ItemsToCount,
		AssignedTo:     in.AssignedTo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// ListPlans GET /api/inventory/cycle-counts/plans?warehouse_id=
func (h *CycleCountHandler) ListPlans(c *fiber.Ctx) error {
	list, err := h.uc.ListPlans(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetPlan GET /api/inventory/cycle-counts/plans/:id
func (h *CycleCountHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.uc.GetPlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(plan)
}

// RecordResult POST /api/inventory/cycle-counts/plans/:id/results
func (h *CycleCountHandler) RecordResult(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.RecordCountResult(c.UserContext(), inventory.RecordCountInput{
		PlanID:          c.Params("id"),
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		CountedQuantity: in.CountedQuantity,
		CountedBy:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListResults GET /api/inventory/cycle-counts/plans/:id/results
func (h *CycleCountHandler) ListResults(c *fiber.Ctx) error {
	list, err := h.uc.ListCountResults(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// CompletePlan POST /api/inventory/cycle-counts/plans/:id/complete
func (h *CycleCountHandler) CompletePlan(c *fiber.Ctx) error {
	plan, err := h.uc.CompletePlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(plan)
}

// CancelPlan POST /api/inventory/cycle-counts/plans/:id/cancel
func (h *CycleCountHandler) CancelPlan(c *fiber.Ctx) error {
	plan, err := h.uc.CancelPlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(plan)
}

// ResolveVariance POST /api/inventory/cycle-counts/results/:id/resolve
func (h *CycleCountHandler) ResolveVariance(c *fiber.Ctx) error {
	var in dto.ResolveVarianceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.ResolveVariance(c.UserContext(), c.Params("id"), entity.CountResolution(in.Resolution), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
