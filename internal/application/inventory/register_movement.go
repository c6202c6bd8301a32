package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// RegisterMovementUseCase es el libro mayor de stock: registra movimientos (IN, OUT, TRANSFER,
// ADJUSTMENT) de forma transaccional y serializada por producto+bodega, y emite
// inventory.movement.recorded tras el Commit.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	movRepo   repository.StockMovementRepository
	locks     *KeyLocker
	publisher Publisher
	log       *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	locks *KeyLocker,
	publisher Publisher,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		movRepo:   movRepo,
		locks:     locks,
		publisher: publisher,
		log:       log,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Para TRANSFER: DestinationWarehouseID obligatorio y distinto de WarehouseID.
// Para ADJUSTMENT: Quantity con signo; Reason queda para auditoría.
type MovementInputDTO struct {
	ProductID              string
	WarehouseID            string
	DestinationWarehouseID string
	Type                   entity.MovementType
	Quantity               decimal.Decimal
	UnitCost               *decimal.Decimal
	Reason                 string
	PerformedBy            string
}

func (in MovementInputDTO) validate() error {
	if in.ProductID == "" || in.WarehouseID == "" || !in.Type.Valid() {
		return domain.ErrInvalidInput
	}
	if err := inventory.ValidateQuantity(in.Type, in.Quantity); err != nil {
		return err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeTRANSFER {
		if in.DestinationWarehouseID == "" || in.DestinationWarehouseID == in.WarehouseID {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// RegisterMovement valida, bloquea la clave, aplica el movimiento sobre el nivel y guarda
// nivel y movimiento en la misma transacción. Si la validación o el stock fallan no se muta
// nada ni se emite evento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInputDTO) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	unlock := uc.locks.Lock(entity.StockKey{ProductID: in.ProductID, WarehouseID: in.WarehouseID}.String())
	defer unlock()
	return uc.registerLocked(ctx, in)
}

// registerLocked asume que el caller ya tiene el lock de la clave y que in es válido.
func (uc *RegisterMovementUseCase) registerLocked(ctx context.Context, in MovementInputDTO) (*entity.StockMovement, error) {
	ctx, span := tracer.Start(ctx, "inventory.RegisterMovement")
	defer span.End()
	span.SetAttributes(
		attribute.String("inventory.product_id", in.ProductID),
		attribute.String("inventory.warehouse_id", in.WarehouseID),
		attribute.String("inventory.movement_type", string(in.Type)),
		attribute.String("inventory.quantity", in.Quantity.String()),
	)

	mov := &entity.StockMovement{
		ID:                     uuid.New().String(),
		ProductID:              in.ProductID,
		WarehouseID:            in.WarehouseID,
		Type:                   in.Type,
		Quantity:               in.Quantity,
		UnitCost:               in.UnitCost,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Reason:                 in.Reason,
		PerformedBy:            in.PerformedBy,
		Timestamp:              time.Now().UTC(),
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if level == nil {
			level = entity.NewStockLevel(in.ProductID, in.WarehouseID)
		}
		// Costo del movimiento: el de entrada si viene, si no el promedio vigente.
		cost := level.UnitCost
		if in.UnitCost != nil {
			cost = *in.UnitCost
		}

		next := level.Clone()
		if err := inventory.ApplyMovement(next, mov); err != nil {
			return err
		}
		next.UpdatedAt = mov.Timestamp
		mov.TotalCost = inventory.Value(in.Quantity.Abs(), cost)

		if err := levelRepo.Upsert(ctx, next); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.log.Debug().Err(err).
			Str("product_id", in.ProductID).
			Str("warehouse_id", in.WarehouseID).
			Str("type", string(in.Type)).
			Msg("movimiento rechazado")
		return nil, err
	}

	publish(ctx, uc.publisher, uc.log, entity.TopicMovementRecorded, entity.MovementRecordedEvent{
		Movement:   *mov,
		OccurredAt: mov.Timestamp,
	})
	return mov, nil
}

// ListMovements devuelve los movimientos del producto en orden cronológico ascendente.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID string, filter entity.MovementFilter) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(ctx, productID, filter)
}
