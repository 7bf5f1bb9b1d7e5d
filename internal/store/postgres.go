package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	pingRetries    = 5
	pingRetryDelay = 2 * time.Second
	pingTimeout    = 10 * time.Second
)

// Postgres stores blobs in a PostgreSQL table.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to PostgreSQL and creates the blobs table if needed.
// The initial ping is retried so a database that is still starting up does
// not fail the session.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := pingWithRetry(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	p := &Postgres{db: db}
	if err := p.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB) error {
	var lastErr error
	for i := 0; i < pingRetries; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pctx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if i < pingRetries-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("failed to ping postgres: %w", ctx.Err())
			case <-time.After(pingRetryDelay):
			}
		}
	}
	return fmt.Errorf("failed to ping postgres after %d retries: %w", pingRetries, lastErr)
}

func (p *Postgres) initSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_blobs_updated_at ON blobs(updated_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create postgres schema: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return []byte(value), nil
}

func (p *Postgres) Save(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
