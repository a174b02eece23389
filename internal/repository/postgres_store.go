package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const collectionsSchema = `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// PostgresStore keeps each collection as one JSONB row.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, collectionsSchema)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM collections WHERE name = $1`

	err := s.db.GetContext(ctx, &data, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, name, data)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM collections WHERE name = $1`
	_, err := s.db.ExecContext(ctx, query, name)
	return err
}
