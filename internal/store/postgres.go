package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by PostgresStore
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const (
	queryGetValue    = `SELECT value FROM kv_store WHERE key = $1`
	queryUpsertValue = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	queryDeleteValue = `DELETE FROM kv_store WHERE key = $1`
)

// PostgresStore keeps values in the kv_store table. Values must be valid JSON.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore wraps a migrated pool
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx, queryGetValue, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrContextGet, key, err)
	}
	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.Exec(ctx, queryUpsertValue, key, value); err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextSet, key, err)
	}
	return nil
}

func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, queryDeleteValue, key); err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextRemove, key, err)
	}
	return nil
}
