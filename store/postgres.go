package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS summaries (
	id            UUID PRIMARY KEY,
	user_id       UUID NOT NULL,
	url           TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	original_text TEXT NOT NULL,
	summary_text  TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_user ON summaries(user_id, created_at DESC);
`

// Postgres stores records through a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, verifies the connection and ensures the schema.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

const pgColumns = `id::text, user_id::text, url, title, original_text, summary_text, created_at, updated_at`

func (p *Postgres) Create(ctx context.Context, rec *Record) error {
	prepare(rec)
	_, err := p.pool.Exec(ctx,
		`INSERT INTO summaries (id, user_id, url, title, original_text, summary_text, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.UserID, rec.URL, rec.Title, rec.OriginalText, rec.SummaryText, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*Record, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+pgColumns+` FROM summaries WHERE id::text = $1`, id)
	rec, err := scanPostgres(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary %s: %w", id, err)
	}
	return rec, nil
}

func (p *Postgres) UpdateSummary(ctx context.Context, id, summary string) (*Record, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE summaries SET summary_text = $1, updated_at = NOW()
		 WHERE id::text = $2 RETURNING `+pgColumns,
		summary, id)
	rec, err := scanPostgres(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update summary %s: %w", id, err)
	}
	return rec, nil
}

func (p *Postgres) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+pgColumns+` FROM summaries WHERE user_id::text = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanPostgres(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func scanPostgres(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.URL, &rec.Title,
		&rec.OriginalText, &rec.SummaryText, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}
