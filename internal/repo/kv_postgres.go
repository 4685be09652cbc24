package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PostgresKeyValueStore struct {
	db *sql.DB
}

func NewPostgresKeyValueStore(db *sql.DB) *PostgresKeyValueStore {
	return &PostgresKeyValueStore{db: db}
}

// EnsureSchema creates the storage table when it does not exist yet.
func (r *PostgresKeyValueStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS cart_storage (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *PostgresKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM cart_storage WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *PostgresKeyValueStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cart_storage (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *PostgresKeyValueStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM cart_storage WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
