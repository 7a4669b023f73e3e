package visits

import (
	"context"

	"vet-management/internal/domain/pets"
)

// Repository persiste el libro de atenciones.
type Repository interface {
	LoadAll(ctx context.Context) (map[string]Visit, error)

	// SaveWithPets guarda el libro de atenciones y el registro de
	// mascotas como una sola unidad de escritura: o quedan los dos,
	// o no queda ninguno. Es el límite transaccional del alta de
	// atención (registro nuevo + append al historial de la mascota).
	SaveWithPets(ctx context.Context, visits map[string]Visit, petsByID map[string]pets.Pet) error
}
