package owners

import "context"

// Repository carga y guarda el registro de propietarios completo.
// La colección es la unidad de persistencia: cada operación mutadora
// carga todo, valida, muta en memoria y guarda todo.
type Repository interface {
	LoadAll(ctx context.Context) (map[string]Owner, error)
	SaveAll(ctx context.Context, all map[string]Owner) error
}
