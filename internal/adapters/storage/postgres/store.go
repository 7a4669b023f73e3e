// Package postgres implementa el store de colecciones sobre Postgres.
// Cada registro es un documento jsonb en la tabla collections; la
// colección completa sigue siendo la unidad de lectura y escritura,
// igual que en el backend de archivos.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"vet-management/internal/ports/storage"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, name string) (storage.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, doc
		FROM collections
		WHERE collection = $1
	`, name)
	if err != nil {
		return nil, fmt.Errorf("postgres: load %s: %w", name, err)
	}
	defer rows.Close()

	c := storage.Collection{}
	for rows.Next() {
		var key string
		var doc []byte
		if err := rows.Scan(&key, &doc); err != nil {
			return nil, fmt.Errorf("postgres: load %s: %w", name, err)
		}
		c[key] = json.RawMessage(doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: load %s: %w", name, err)
	}
	return c, nil
}

func (s *Store) Save(ctx context.Context, name string, c storage.Collection) error {
	return s.SaveAll(ctx, map[string]storage.Collection{name: c})
}

// SaveAll reemplaza cada colección del batch dentro de una única transacción.
func (s *Store) SaveAll(ctx context.Context, batch map[string]storage.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for name, c := range batch {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE collection = $1`, name); err != nil {
			return fmt.Errorf("postgres: save %s: %w", name, err)
		}
		for key, doc := range c {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO collections (collection, key, doc)
				VALUES ($1, $2, $3)
			`, name, key, []byte(doc)); err != nil {
				return fmt.Errorf("postgres: save %s/%s: %w", name, key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}
