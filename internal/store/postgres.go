package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Postgres stores records as JSONB rows in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres store requires DATABASE_URL")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS portfolios (
		key        TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create portfolios table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Put implements Store.
func (p *Postgres) Put(ctx context.Context, key string, rec *types.PortfolioRecord) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO portfolios (key, data)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = NOW()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio %s: %w", key, err)
	}
	return nil
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, key string) (*types.PortfolioRecord, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM portfolios WHERE key = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portfolio %s: %w", key, err)
	}
	return decode(data)
}

// Delete implements Store.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM portfolios WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
