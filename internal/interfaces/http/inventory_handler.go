package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ops/internal/application/dto"
	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// InventoryHandler libro mayor, niveles de stock y reservas.
type InventoryHandler struct {
	ledger       *inventory.RegisterMovementUseCase
	levels       *inventory.StockLevelUseCase
	reservations *inventory.ReservationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.RegisterMovementUseCase,
	levels *inventory.StockLevelUseCase,
	reservations *inventory.ReservationUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, levels: levels, reservations: reservations}
}

// RegisterMovement POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.ledger.RegisterMovement(c.UserContext(), inventory.MovementInputDTO{
		ProductID:              in.ProductID,
		WarehouseID:            in.WarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Type:                   entity.MovementType(in.Type),
		Quantity:               in.Quantity,
		UnitCost:               in.UnitCost,
		Reason:                 in.Reason,
		PerformedBy:            GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListMovements GET /api/inventory/products/:productId/movements?warehouse_id=&type=&from=&to=
// from/to en RFC3339.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := entity.MovementFilter{
		WarehouseID: c.Query("warehouse_id"),
		Type:        entity.MovementType(c.Query("type")),
	}
	var err error
	if filter.From, err = queryTime(c, "from"); err != nil {
		return badQuery(c, "from debe ser RFC3339")
	}
	if filter.To, err = queryTime(c, "to"); err != nil {
		return badQuery(c, "to debe ser RFC3339")
	}
	list, err := h.ledger.ListMovements(c.UserContext(), c.Params("productId"), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetStockLevel GET /api/inventory/levels/:warehouseId/:productId
func (h *InventoryHandler) GetStockLevel(c *fiber.Ctx) error {
	level, err := h.levels.GetStockLevel(c.UserContext(), c.Params("productId"), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(level)
}

// ListStockLevels GET /api/inventory/levels?warehouse_id= (sin bodega = todas)
func (h *InventoryHandler) ListStockLevels(c *fiber.Ctx) error {
	var (
		list []*entity.StockLevel
		err  error
	)
	if wh := c.Query("warehouse_id"); wh != "" {
		list, err = h.levels.ListStockLevels(c.UserContext(), wh)
	} else {
		list, err = h.levels.ListAllStockLevels(c.UserContext())
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// UpdateReorderSettings PUT /api/inventory/levels/:warehouseId/:productId/reorder-settings
func (h *InventoryHandler) UpdateReorderSettings(c *fiber.Ctx) error {
	var in dto.ReorderSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	level, err := h.levels.UpdateReorderSettings(c.UserContext(), c.Params("productId"), c.Params("warehouseId"), entity.ReorderSettings{
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		MaxStock:        in.MaxStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(level)
}

// Reserve POST /api/inventory/reservations. 200 con ok=false si no alcanza el disponible.
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ok, err := h.reservations.Reserve(c.UserContext(), in.ProductID, in.WarehouseID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReservationResponse{OK: ok})
}

// Release POST /api/inventory/reservations/release
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ok, err := h.reservations.Release(c.UserContext(), in.ProductID, in.WarehouseID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReservationResponse{OK: ok})
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
