package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

// BatchUseCase registro de lotes con vencimiento y control de calidad.
// No lee ni escribe niveles de stock.
type BatchUseCase struct {
	repo repository.BatchRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(repo repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{repo: repo}
}

// CreateBatchInput datos de recepción de un lote. Opcionales en puntero.
type CreateBatchInput struct {
	BatchNumber       string
	ProductID         string
	WarehouseID       string
	Quantity          decimal.Decimal
	AvailableQuantity *decimal.Decimal
	ReceivedDate      *time.Time
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	UnitCost          decimal.Decimal
	QualityChecked    *bool
	Status            entity.BatchStatus
}

// CreateBatch crea el lote en ACTIVE con AvailableQuantity = Quantity salvo que se indique.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, in CreateBatchInput) (*entity.Batch, error) {
	if in.BatchNumber == "" || in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.BatchStatusActive
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	available := in.Quantity
	if in.AvailableQuantity != nil {
		available = *in.AvailableQuantity
	}
	if available.IsNegative() || available.GreaterThan(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	received := now
	if in.ReceivedDate != nil {
		received = *in.ReceivedDate
	}
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		BatchNumber:       in.BatchNumber,
		ProductID:         in.ProductID,
		WarehouseID:       in.WarehouseID,
		Quantity:          in.Quantity,
		AvailableQuantity: available,
		ReceivedDate:      received,
		ManufacturingDate: in.ManufacturingDate,
		ExpiryDate:        in.ExpiryDate,
		UnitCost:          in.UnitCost,
		QualityChecked:    in.QualityChecked != nil && *in.QualityChecked,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetBatch obtiene un lote por ID o domain.ErrBatchNotFound.
func (uc *BatchUseCase) GetBatch(ctx context.Context, id string) (*entity.Batch, error) {
	batch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrBatchNotFound
	}
	return batch, nil
}

// GetBatches lotes de un producto en una bodega.
func (uc *BatchUseCase) GetBatches(ctx context.Context, productID, warehouseID string) ([]*entity.Batch, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.ListByProduct(ctx, productID, warehouseID)
}

// UpdateBatchStatus registra el nuevo estado (cualquier transición está permitida).
func (uc *BatchUseCase) UpdateBatchStatus(ctx context.Context, id string, status entity.BatchStatus) (*entity.Batch, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	batch.Status = status
	batch.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetExpiringBatches lotes de todas las bodegas que vencen entre ahora y ahora + withinDays.
func (uc *BatchUseCase) GetExpiringBatches(ctx context.Context, withinDays int) ([]*entity.Batch, error) {
	if withinDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	return uc.repo.ListExpiring(ctx, now, now.AddDate(0, 0, withinDays))
}
