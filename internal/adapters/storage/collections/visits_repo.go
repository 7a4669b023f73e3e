package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"vet-management/internal/domain/pets"
	"vet-management/internal/domain/visits"
	"vet-management/internal/ports/storage"
)

const VisitsCollection = "atenciones"

type VisitsRepo struct {
	store storage.Store
}

func NewVisitsRepo(store storage.Store) *VisitsRepo {
	return &VisitsRepo{store: store}
}

func (r *VisitsRepo) LoadAll(ctx context.Context) (map[string]visits.Visit, error) {
	c, err := r.store.Load(ctx, VisitsCollection)
	if err != nil {
		return nil, err
	}

	all := make(map[string]visits.Visit, len(c))
	for key, raw := range c {
		var v visits.Visit
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("collections: decode visit %s: %w", key, err)
		}
		v.ID = key
		all[key] = v
	}
	return all, nil
}

// SaveWithPets persiste el libro de atenciones y el registro de
// mascotas en un único SaveAll del store, que es quien garantiza la
// atomicidad del par.
func (r *VisitsRepo) SaveWithPets(ctx context.Context, allVisits map[string]visits.Visit, petsByID map[string]pets.Pet) error {
	vc := make(storage.Collection, len(allVisits))
	for key, v := range allVisits {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("collections: encode visit %s: %w", key, err)
		}
		vc[key] = raw
	}

	pc, err := encodePets(petsByID)
	if err != nil {
		return err
	}

	return r.store.SaveAll(ctx, map[string]storage.Collection{
		VisitsCollection: vc,
		PetsCollection:   pc,
	})
}
