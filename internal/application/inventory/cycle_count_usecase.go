package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/inventory-ops/internal/domain"
	"github.com/jhoicas/inventory-ops/internal/domain/entity"
	"github.com/jhoicas/inventory-ops/internal/domain/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// CycleCountReason motivo registrado en los ajustes generados por conteo cíclico.
const CycleCountReason = "cycle count variance"

// CycleCountUseCase programa conteos, registra varianzas contra el stock del sistema y las
// resuelve; la resolución ADJUSTMENT vuelve a entrar por el libro mayor.
type CycleCountUseCase struct {
	repo      repository.CycleCountRepository
	levelRepo repository.StockLevelRepository
	ledger    *RegisterMovementUseCase
	locks     *KeyLocker
	publisher Publisher
	log       *logger.Logger
	threshold decimal.Decimal
}

// NewCycleCountUseCase construye el coordinador. threshold es el porcentaje (absoluto) a partir
// del cual se emite inventory.count.variance_detected; cero usa el valor por defecto (10%).
func NewCycleCountUseCase(
	repo repository.CycleCountRepository,
	levelRepo repository.StockLevelRepository,
	ledger *RegisterMovementUseCase,
	locks *KeyLocker,
	publisher Publisher,
	log *logger.Logger,
	threshold decimal.Decimal,
) *CycleCountUseCase {
	if !threshold.IsPositive() {
		threshold = inventory.DefaultVarianceThreshold
	}
	return &CycleCountUseCase{
		repo:      repo,
		levelRepo: levelRepo,
		ledger:    ledger,
		locks:     locks,
		publisher: publisher,
		log:       log,
		threshold: threshold,
	}
}

// CreatePlanInput datos para crear un plan. NextCountDate nil = ahora + frecuencia.
type CreatePlanInput struct {
	Name           string
	WarehouseID    string
	Frequency      entity.CountFrequency
	NextCountDate  *time.Time
	CountMethod    entity.CountMethod
	TargetAccuracy decimal.Decimal
	ItemsToCount   int
	AssignedTo     []string
}

// CreatePlan crea el plan en SCHEDULED.
func (uc *CycleCountUseCase) CreatePlan(ctx context.Context, in CreatePlanInput) (*entity.CycleCountPlan, error) {
	if in.Name == "" || in.WarehouseID == "" || !in.Frequency.Valid() || !in.CountMethod.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemsToCount < 0 || in.TargetAccuracy.IsNegative() || in.TargetAccuracy.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	next := in.Frequency.Next(now)
	if in.NextCountDate != nil {
		next = *in.NextCountDate
	}
	plan := &entity.CycleCountPlan{
		ID:             uuid.New().String(),
		Name:           in.Name,
		WarehouseID:    in.WarehouseID,
		Frequency:      in.Frequency,
		NextCountDate:  next,
		CountMethod:    in.CountMethod,
		TargetAccuracy: in.TargetAccuracy,
		ItemsToCount:   in.ItemsToCount,
		AssignedTo:     dedupe(in.AssignedTo),
		Status:         entity.PlanStatusScheduled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan obtiene un plan o domain.ErrPlanNotFound.
func (uc *CycleCountUseCase) GetPlan(ctx context.Context, id string) (*entity.CycleCountPlan, error) {
	plan, err := uc.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

// ListPlans planes de una bodega (vacío = todas).
func (uc *CycleCountUseCase) ListPlans(ctx context.Context, warehouseID string) ([]*entity.CycleCountPlan, error) {
	return uc.repo.ListPlans(ctx, warehouseID)
}

// ListCountResults resultados registrados en un plan.
func (uc *CycleCountUseCase) ListCountResults(ctx context.Context, planID string) ([]*entity.CountResult, error) {
	if _, err := uc.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return uc.repo.ListResults(ctx, planID)
}

// RecordCountInput conteo físico de un producto.
type RecordCountInput struct {
	PlanID          string
	ProductID       string
	LocationID      string
	CountedQuantity decimal.Decimal
	CountedBy       string
}

// RecordCountResult toma la foto de onHand en la bodega del plan, calcula la varianza y la
// guarda sin resolver. El primer conteo pasa el plan a IN_PROGRESS.
func (uc *CycleCountUseCase) RecordCountResult(ctx context.Context, in RecordCountInput) (*entity.CountResult, error) {
	if in.PlanID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CountedQuantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	ctx, span := tracer.Start(ctx, "inventory.RecordCountResult")
	defer span.End()

	unlock := uc.locks.Lock(planLockKey(in.PlanID))
	defer unlock()

	plan, err := uc.GetPlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.Status.Terminal() {
		return nil, domain.ErrPlanClosed
	}

	systemQty := decimal.Zero
	level, err := uc.levelRepo.Get(ctx, in.ProductID, plan.WarehouseID)
	if err != nil {
		return nil, err
	}
	if level != nil {
		systemQty = level.OnHand
	}

	variance := inventory.Variance(systemQty, in.CountedQuantity)
	result := &entity.CountResult{
		ID:              uuid.New().String(),
		PlanID:          plan.ID,
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		SystemQuantity:  systemQty,
		CountedQuantity: in.CountedQuantity,
		Variance:        variance,
		VariancePercent: inventory.VariancePercent(variance, systemQty),
		CountedBy:       in.CountedBy,
		Timestamp:       time.Now().UTC(),
	}
	if err := uc.repo.CreateResult(ctx, result); err != nil {
		return nil, err
	}

	if plan.Status == entity.PlanStatusScheduled {
		plan.Status = entity.PlanStatusInProgress
		plan.UpdatedAt = result.Timestamp
		if err := uc.repo.UpdatePlan(ctx, plan); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.String("inventory.plan_id", plan.ID),
		attribute.String("inventory.product_id", in.ProductID),
		attribute.String("inventory.variance_percent", result.VariancePercent.String()),
	)

	if inventory.IsSignificant(result.VariancePercent, uc.threshold) {
		uc.log.Info().
			Str("plan_id", plan.ID).
			Str("product_id", in.ProductID).
			Str("variance", variance.String()).
			Str("variance_percent", result.VariancePercent.String()).
			Msg("varianza significativa en conteo cíclico")
		publish(ctx, uc.publisher, uc.log, entity.TopicVarianceDetected, entity.VarianceDetectedEvent{
			PlanID:          plan.ID,
			ProductID:       in.ProductID,
			VariancePercent: result.VariancePercent,
			CountResultID:   result.ID,
			OccurredAt:      result.Timestamp,
		})
	}
	return result, nil
}

// ResolveVariance marca el resultado como resuelto. Con ADJUSTMENT registra en el libro mayor un
// ajuste por la varianza en la bodega del plan y guarda su ID; RECOUNT/ACCEPTED solo anotan.
func (uc *CycleCountUseCase) ResolveVariance(ctx context.Context, countResultID string, resolution entity.CountResolution, resolvedBy string) (*entity.CountResult, error) {
	if !resolution.Valid() {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "inventory.ResolveVariance")
	defer span.End()
	span.SetAttributes(attribute.String("inventory.resolution", string(resolution)))

	result, err := uc.getResult(ctx, countResultID)
	if err != nil {
		return nil, err
	}
	plan, err := uc.GetPlan(ctx, result.PlanID)
	if err != nil {
		return nil, err
	}

	// Misma clave que los movimientos: el ajuste y la resolución son atómicos respecto al stock.
	unlock := uc.locks.Lock(entity.StockKey{ProductID: result.ProductID, WarehouseID: plan.WarehouseID}.String())
	defer unlock()

	// Releer bajo lock: otra resolución pudo ganar la carrera.
	result, err = uc.getResult(ctx, countResultID)
	if err != nil {
		return nil, err
	}
	if result.Resolved {
		return nil, domain.ErrAlreadyResolved
	}

	if resolution == entity.ResolutionAdjustment && !result.Variance.IsZero() {
		mov, err := uc.ledger.registerLocked(ctx, MovementInputDTO{
			ProductID:   result.ProductID,
			WarehouseID: plan.WarehouseID,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    result.Variance,
			Reason:      CycleCountReason,
			PerformedBy: resolvedBy,
		})
		if err != nil {
			return nil, err
		}
		result.AdjustmentID = mov.ID
	}

	now := time.Now().UTC()
	result.Resolved = true
	result.Resolution = resolution
	result.ResolvedAt = &now
	if err := uc.repo.UpdateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CompletePlan cierra el plan y registra la exactitud obtenida.
func (uc *CycleCountUseCase) CompletePlan(ctx context.Context, planID string) (*entity.CycleCountPlan, error) {
	return uc.closePlan(ctx, planID, entity.PlanStatusCompleted)
}

// CancelPlan cancela un plan SCHEDULED o IN_PROGRESS.
func (uc *CycleCountUseCase) CancelPlan(ctx context.Context, planID string) (*entity.CycleCountPlan, error) {
	return uc.closePlan(ctx, planID, entity.PlanStatusCancelled)
}

func (uc *CycleCountUseCase) closePlan(ctx context.Context, planID string, status entity.PlanStatus) (*entity.CycleCountPlan, error) {
	unlock := uc.locks.Lock(planLockKey(planID))
	defer unlock()

	plan, err := uc.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status.Terminal() {
		return nil, domain.ErrPlanClosed
	}

	now := time.Now().UTC()
	if status == entity.PlanStatusCompleted {
		results, err := uc.repo.ListResults(ctx, planID)
		if err != nil {
			return nil, err
		}
		accuracy := inventory.Accuracy(results, uc.threshold)
		plan.Accuracy = &accuracy
		plan.CompletedAt = &now
	}
	plan.Status = status
	plan.UpdatedAt = now
	if err := uc.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *CycleCountUseCase) getResult(ctx context.Context, id string) (*entity.CountResult, error) {
	result, err := uc.repo.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrCountResultNotFound
	}
	return result, nil
}

func planLockKey(planID string) string {
	return "plan/" + planID
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
