package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"vet-management/internal/domain/pets"
	"vet-management/internal/ports/storage"
)

const PetsCollection = "mascotas"

type PetsRepo struct {
	store storage.Store
}

func NewPetsRepo(store storage.Store) *PetsRepo {
	return &PetsRepo{store: store}
}

func (r *PetsRepo) LoadAll(ctx context.Context) (map[string]pets.Pet, error) {
	c, err := r.store.Load(ctx, PetsCollection)
	if err != nil {
		return nil, err
	}

	all := make(map[string]pets.Pet, len(c))
	for id, raw := range c {
		var p pets.Pet
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("collections: decode pet %s: %w", id, err)
		}
		p.ID = id
		all[id] = p
	}
	return all, nil
}

func (r *PetsRepo) SaveAll(ctx context.Context, all map[string]pets.Pet) error {
	c, err := encodePets(all)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, PetsCollection, c)
}

func encodePets(all map[string]pets.Pet) (storage.Collection, error) {
	c := make(storage.Collection, len(all))
	for id, p := range all {
		if p.History == nil {
			p.History = []string{}
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("collections: encode pet %s: %w", id, err)
		}
		c[id] = raw
	}
	return c, nil
}
