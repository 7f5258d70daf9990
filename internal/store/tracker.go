package store

import (
	"context"
	"database/sql"

	"github.com/parcelo/parcelo-api/internal/domain"
)

// TrackerStore defines the interface for tracker data persistence.
type TrackerStore interface {
	// Create saves a new tracker to the store.
	// Returns ErrTrackerExists if a tracker with the same carrier code is
	// already registered (backed by the unique index on trackers.code).
	// Returns validation errors from the domain Tracker if data is invalid.
	Create(ctx context.Context, tracker *domain.Tracker) error

	// GetByCode retrieves a tracker by its carrier code.
	// Returns ErrTrackerNotFound if no tracker with the code exists.
	GetByCode(ctx context.Context, code string) (*domain.Tracker, error)

	// WithTx returns a new TrackerStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TrackerStore
}
