// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres adapts a pgx connection pool to the [Store] contract.
//
// All documents live in one kv_documents table (key text primary key, value
// text). The schema is created by the golang-migrate runner at startup.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an already-connected pgx pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Get returns the document stored at key, or [ErrNotFound].
func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := p.pool.QueryRow(ctx,
		`SELECT value FROM kv_documents WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("kvstore: postgres get %q: %w", key, err)
	}

	return value, nil
}

// Set overwrites the document at key unconditionally (upsert).
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_documents (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("kvstore: postgres set %q: %w", key, err)
	}
	return nil
}

// Delete removes the document at key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM kv_documents WHERE key = $1`, key,
	); err != nil {
		return fmt.Errorf("kvstore: postgres delete %q: %w", key, err)
	}
	return nil
}

// Keys enumerates every key beginning with prefix.
func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key FROM kv_documents WHERE key LIKE $1 || '%'`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("kvstore: postgres keys %q: %w", prefix, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("kvstore: postgres scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Ping verifies the PostgreSQL connection is healthy.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("kvstore: postgres ping: %w", err)
	}
	return nil
}
