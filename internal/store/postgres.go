package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores the master document as a single JSONB row and selection
// documents as one JSONB row per slug. It satisfies both this package's
// Backend and the selection package's Backend interface.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the schema
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS master_document (
			id   smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			doc  jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS selections (
			slug text PRIMARY KEY,
			doc  jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT NOW(),
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// LoadDocument returns the stored master document bytes, or nil if the row
// does not exist yet.
func (p *Postgres) LoadDocument(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM master_document WHERE id = 1`).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load master document: %w", err)
	}
	return doc, nil
}

// SaveDocument upserts the single master document row. The upsert is a
// single statement, so the replacement is atomic.
func (p *Postgres) SaveDocument(ctx context.Context, data []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO master_document (id, doc) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET doc = $1, updated_at = NOW()`,
		data,
	)
	if err != nil {
		return fmt.Errorf("failed to save master document: %w", err)
	}
	return nil
}

// ListSlugs returns all selection slugs in lexical order.
func (p *Postgres) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT slug FROM selections ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	return slugs, nil
}

// LoadSelection returns the stored selection bytes for a slug, or nil if no
// such selection exists.
func (p *Postgres) LoadSelection(ctx context.Context, slug string) ([]byte, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM selections WHERE slug = $1`, slug).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load selection %s: %w", slug, err)
	}
	return doc, nil
}

// SaveSelection upserts a selection document.
func (p *Postgres) SaveSelection(ctx context.Context, slug string, data []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO selections (slug, doc) VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET doc = $2, updated_at = NOW()`,
		slug, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save selection %s: %w", slug, err)
	}
	return nil
}

// DeleteSelection removes a selection row. Deleting an absent slug reports
// false with no error; the caller maps that to its own not-found type.
func (p *Postgres) DeleteSelection(ctx context.Context, slug string) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM selections WHERE slug = $1`, slug)
	if err != nil {
		return false, fmt.Errorf("failed to delete selection %s: %w", slug, err)
	}
	return tag.RowsAffected() > 0, nil
}
