package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Especializaciones: errors.Is(err, ErrNotFound) sigue funcionando sobre ellas.
var (
	ErrStockLevelNotFound  = fmt.Errorf("nivel de stock: %w", ErrNotFound)
	ErrBatchNotFound       = fmt.Errorf("lote: %w", ErrNotFound)
	ErrPlanNotFound        = fmt.Errorf("plan de conteo: %w", ErrNotFound)
	ErrCountResultNotFound = fmt.Errorf("resultado de conteo: %w", ErrNotFound)

	ErrPlanClosed      = fmt.Errorf("plan de conteo cerrado: %w", ErrConflict)
	ErrAlreadyResolved = fmt.Errorf("varianza ya resuelta: %w", ErrConflict)

	ErrDuplicateBatch             = fmt.Errorf("número de lote: %w", ErrDuplicate)
	ErrUnsupportedValuationMethod = fmt.Errorf("método de valuación no soportado: %w", ErrInvalidInput)
)
