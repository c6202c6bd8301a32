package memory

import (
	"sync"

	"github.com/jhoicas/inventory-ops/internal/domain/entity"
)

// Store almacenamiento en memoria propiedad de una instancia del motor (sin singletons).
// Los niveles usan una tabla de clave compuesta (producto, bodega).
type Store struct {
	mu sync.RWMutex

	levels    map[entity.StockKey]*entity.StockLevel
	movements []*entity.StockMovement
	movByID   map[string]int

	batches      map[string]*entity.Batch
	batchNumbers map[batchKey]string

	plans   map[string]*entity.CycleCountPlan
	results map[string]*entity.CountResult
	// orden de inserción de resultados
	resultIDs []string
}

type batchKey struct {
	productID   string
	warehouseID string
	number      string
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		levels:       make(map[entity.StockKey]*entity.StockLevel),
		movByID:      make(map[string]int),
		batches:      make(map[string]*entity.Batch),
		batchNumbers: make(map[batchKey]string),
		plans:        make(map[string]*entity.CycleCountPlan),
		results:      make(map[string]*entity.CountResult),
	}
}
