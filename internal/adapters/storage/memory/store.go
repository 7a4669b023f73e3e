// Package memory implementa el store de colecciones en memoria,
// para desarrollo y tests.
package memory

import (
	"context"
	"sync"

	"vet-management/internal/ports/storage"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]storage.Collection
}

func New() *Store {
	return &Store{collections: make(map[string]storage.Collection)}
}

func (s *Store) Load(ctx context.Context, name string) (storage.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// copia para que el caller nunca comparta estado con el store
	out := storage.Collection{}
	for k, v := range s.collections[name] {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, name string, c storage.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[name] = clone(c)
	return nil
}

func (s *Store) SaveAll(ctx context.Context, batch map[string]storage.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, c := range batch {
		s.collections[name] = clone(c)
	}
	return nil
}

func clone(c storage.Collection) storage.Collection {
	out := storage.Collection{}
	for k, v := range c {
		out[k] = append([]byte(nil), v...)
	}
	return out
}
