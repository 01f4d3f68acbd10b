package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecolog/freightquote/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quotations (
    id          TEXT PRIMARY KEY,
    created_at  TIMESTAMPTZ NOT NULL,
    client      TEXT NOT NULL DEFAULT '',
    total       DOUBLE PRECISION NOT NULL,
    payload     JSONB NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS quotations_created_at_idx ON quotations (created_at DESC)`,
}

// Postgres stores quotations in a single table with the full quotation as JSONB.
type Postgres struct {
	pool  *pgxpool.Pool
	limit int
}

// NewPostgres connects, pings and ensures the schema exists.
func NewPostgres(ctx context.Context, dsn string, limit int) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn cannot be empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	p := &Postgres{pool: pool, limit: limit}
	if p.limit <= 0 {
		p.limit = DefaultHistoryLimit
	}

	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate creates the quotations table when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate quotations table: %w", err)
		}
	}
	return nil
}

// Save upserts a quotation and deletes rows beyond the history limit.
func (p *Postgres) Save(ctx context.Context, quotation *domain.Quotation) error {
	if quotation == nil || quotation.ID == "" {
		return errors.New("quotation id cannot be empty")
	}

	payload, err := json.Marshal(quotation)
	if err != nil {
		return fmt.Errorf("failed to marshal quotation: %w", err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO quotations (id, created_at, client, total, payload)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET created_at = EXCLUDED.created_at, client = EXCLUDED.client, total = EXCLUDED.total, payload = EXCLUDED.payload`,
		quotation.ID, quotation.CreatedAt, quotation.Client, quotation.Breakdown.Total, payload)
	if err != nil {
		return fmt.Errorf("failed to insert quotation: %w", err)
	}

	_, err = tx.Exec(ctx, `
DELETE FROM quotations
WHERE id NOT IN (SELECT id FROM quotations ORDER BY created_at DESC, id DESC LIMIT $1)`, p.limit)
	if err != nil {
		return fmt.Errorf("failed to evict quotations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit quotation: %w", err)
	}
	return nil
}

// List returns up to limit quotations, newest first.
func (p *Postgres) List(ctx context.Context, limit int) ([]*domain.Quotation, error) {
	if limit <= 0 || limit > p.limit {
		limit = p.limit
	}

	rows, err := p.pool.Query(ctx,
		`SELECT payload FROM quotations ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	out := []*domain.Quotation{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		var q domain.Quotation
		if err := json.Unmarshal(payload, &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quotation: %w", err)
		}
		out = append(out, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotations: %w", err)
	}
	return out, nil
}

// Get retrieves a quotation by ID.
func (p *Postgres) Get(ctx context.Context, id string) (*domain.Quotation, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM quotations WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuotationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	var q domain.Quotation
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quotation: %w", err)
	}
	return &q, nil
}

// Delete removes a quotation by ID.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
