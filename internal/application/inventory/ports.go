package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no se persiste nada (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}

// Publisher publica eventos de dominio en el bus (Kafka, Redis, log...).
// La entrega a suscriptores es responsabilidad del adaptador.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
