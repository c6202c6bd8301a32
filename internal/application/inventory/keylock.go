package inventory

import "sync"

// KeyLocker serializa operaciones por clave (producto+bodega, plan) dentro del proceso.
// Claves distintas no se bloquean entre sí.
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocker construye un locker vacío.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock bloquea la clave y devuelve la función para liberarla.
func (k *KeyLocker) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
