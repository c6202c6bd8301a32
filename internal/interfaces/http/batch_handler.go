package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ops/internal/application/dto"
	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

const defaultExpiringDays = 30

// BatchHandler registro de lotes.
type BatchHandler struct {
	uc *inventory.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create POST /api/inventory/batches
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	batch, err := h.uc.CreateBatch(c.UserContext(), inventory.CreateBatchInput{
		BatchNumber:       in.BatchNumber,
		ProductID:         in.ProductID,
		WarehouseID:       in.WarehouseID,
		Quantity:          in.Quantity,
		AvailableQuantity: in.AvailableQuantity,
		ReceivedDate:      in.ReceivedDate,
		ManufacturingDate: in.ManufacturingDate,
		ExpiryDate:        in.ExpiryDate,
		UnitCost:          in.UnitCost,
		QualityChecked:    in.QualityChecked,
		Status:            entity.BatchStatus(in.Status),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

// GetByID GET /api/inventory/batches/:id
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(batch)
}

// List GET /api/inventory/batches?product_id=&warehouse_id=
func (h *BatchHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetBatches(c.UserContext(), c.Query("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// Expiring GET /api/inventory/batches/expiring?within_days=30
func (h *BatchHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("within_days", defaultExpiringDays)
	list, err := h.uc.GetExpiringBatches(c.UserContext(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// UpdateStatus PATCH /api/inventory/batches/:id/status
func (h *BatchHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBatchStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	batch, err := h.uc.UpdateBatchStatus(c.UserContext(), c.Params("id"), entity.BatchStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(batch)
}
