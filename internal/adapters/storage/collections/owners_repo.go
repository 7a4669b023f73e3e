// Package collections implementa los repositorios de cada registro
// sobre el store de colecciones, codificando entre los tipos del
// dominio y los documentos JSON con las claves de la forma de cable
// (activo, nombre, telefonos, historial, ...). Funciona igual sobre
// cualquier backend: archivos JSON, memoria o Postgres.
package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"vet-management/internal/domain/owners"
	"vet-management/internal/ports/storage"
)

const OwnersCollection = "propietarios"

type OwnersRepo struct {
	store storage.Store
}

func NewOwnersRepo(store storage.Store) *OwnersRepo {
	return &OwnersRepo{store: store}
}

func (r *OwnersRepo) LoadAll(ctx context.Context) (map[string]owners.Owner, error) {
	c, err := r.store.Load(ctx, OwnersCollection)
	if err != nil {
		return nil, err
	}

	all := make(map[string]owners.Owner, len(c))
	for dni, raw := range c {
		var o owners.Owner
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("collections: decode owner %s: %w", dni, err)
		}
		o.DNI = dni
		all[dni] = o
	}
	return all, nil
}

func (r *OwnersRepo) SaveAll(ctx context.Context, all map[string]owners.Owner) error {
	c, err := encodeOwners(all)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, OwnersCollection, c)
}

func encodeOwners(all map[string]owners.Owner) (storage.Collection, error) {
	c := make(storage.Collection, len(all))
	for dni, o := range all {
		raw, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("collections: encode owner %s: %w", dni, err)
		}
		c[dni] = raw
	}
	return c, nil
}
