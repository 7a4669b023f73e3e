package pets

import "context"

// Repository carga y guarda el registro de mascotas completo.
type Repository interface {
	LoadAll(ctx context.Context) (map[string]Pet, error)
	SaveAll(ctx context.Context, all map[string]Pet) error
}
