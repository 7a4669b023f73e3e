// Package jsonfile persiste cada colección como un archivo JSON
// (propietarios.json, mascotas.json, atenciones.json), igual que el
// formato de intercambio original del sistema.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"vet-management/internal/ports/storage"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load devuelve la colección completa. Un archivo ausente carga como
// colección vacía; un archivo presente pero indecodificable es un error
// (nunca se trata como vacío, para no pisar datos válidos en el próximo Save).
func (s *Store) Load(ctx context.Context, name string) (storage.Collection, error) {
	b, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return storage.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", name, err)
	}

	c := storage.Collection{}
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w (%v)", name, storage.ErrUnreadable, err)
	}
	return c, nil
}

func (s *Store) Save(ctx context.Context, name string, c storage.Collection) error {
	tmp, err := s.stage(name, c)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("jsonfile: write %s: %w", name, err)
	}
	return nil
}

// SaveAll escribe varias colecciones como una unidad: primero deja
// todos los staging listos y recién después renombra. Un fallo en la
// fase de staging no toca ningún archivo definitivo.
func (s *Store) SaveAll(ctx context.Context, batch map[string]storage.Collection) error {
	staged := make(map[string]string, len(batch))
	for name, c := range batch {
		tmp, err := s.stage(name, c)
		if err != nil {
			for _, t := range staged {
				_ = os.Remove(t)
			}
			return err
		}
		staged[name] = tmp
	}

	for name, tmp := range staged {
		if err := os.Rename(tmp, s.path(name)); err != nil {
			for _, t := range staged {
				_ = os.Remove(t)
			}
			return fmt.Errorf("jsonfile: write %s: %w", name, err)
		}
	}
	return nil
}

// stage serializa la colección a un archivo temporal en el mismo
// directorio, para que el rename posterior sea atómico.
func (s *Store) stage(name string, c storage.Collection) (string, error) {
	b, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", fmt.Errorf("jsonfile: encode %s: %w", name, err)
	}

	tmp := filepath.Join(s.dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", fmt.Errorf("jsonfile: stage %s: %w", name, err)
	}
	return tmp, nil
}
