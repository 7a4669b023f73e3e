package storage

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrUnreadable indica que el recurso existe pero no pudo decodificarse.
	// Distinto de "no existe": un recurso ausente carga como colección vacía.
	ErrUnreadable = errors.New("collection unreadable")
)

// Collection es una colección de registros indexada por clave.
type Collection map[string]json.RawMessage

// Store carga y guarda colecciones completas por nombre.
// Cada operación mutadora del dominio sigue el ciclo
// cargar -> validar -> mutar -> guardar, con la colección como unidad.
type Store interface {
	// Load devuelve la colección completa. Si el recurso no existe,
	// devuelve una colección vacía sin error.
	Load(ctx context.Context, name string) (Collection, error)

	// Save reemplaza la colección completa.
	Save(ctx context.Context, name string, c Collection) error

	// SaveAll reemplaza varias colecciones como una sola unidad de escritura.
	SaveAll(ctx context.Context, batch map[string]Collection) error
}
