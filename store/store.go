// Package store persists summary documents. Memory, SQLite and PostgreSQL
// implementations share one Store interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("summary not found")

// DefaultListLimit applies when ListByUser is given a non-positive limit.
const DefaultListLimit = 50

// Record is one stored summary. Only SummaryText and UpdatedAt change after
// creation.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	OriginalText string    `json:"original_text"`
	SummaryText  string    `json:"summary_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store is the persistence collaborator.
type Store interface {
	// Create assigns an id and timestamps when unset and saves rec.
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	UpdateSummary(ctx context.Context, id, summary string) (*Record, error)
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	Close() error
}

// Open selects an implementation by driver name: "memory", "sqlite" or
// "postgres".
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// prepare fills the id and timestamps of a new record.
func prepare(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
