package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistryFetcher reads the newest artifact of a named model from Postgres.
//
//	CREATE TABLE oracle_artifacts (
//	    id         BIGSERIAL PRIMARY KEY,
//	    name       TEXT        NOT NULL,
//	    version    TEXT        NOT NULL,
//	    payload    TEXT        NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    UNIQUE (name, version)
//	);
type RegistryFetcher struct {
	pool *pgxpool.Pool
	name string
}

// NewRegistryFetcher constructs the registry fetcher.
func NewRegistryFetcher(pool *pgxpool.Pool, name string) *RegistryFetcher {
	return &RegistryFetcher{pool: pool, name: strings.TrimSpace(name)}
}

// Fetch implements Fetcher.
func (r *RegistryFetcher) Fetch(ctx context.Context) ([]byte, error) {
	var payload string
	err := r.pool.QueryRow(ctx, `
		SELECT payload
		FROM oracle_artifacts
		WHERE name = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, r.name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no artifact registered for model %q", r.name)
	}
	if err != nil {
		return nil, fmt.Errorf("query oracle registry: %w", err)
	}
	return []byte(payload), nil
}

var _ Fetcher = (*RegistryFetcher)(nil)
