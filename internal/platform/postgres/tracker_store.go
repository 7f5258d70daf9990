package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/store"
)

// PostgresTrackerStore implements the store.TrackerStore interface using a
// PostgreSQL database as the storage backend. Shipment events are stored as
// a JSONB column since their shape is dictated by the carrier.
type PostgresTrackerStore struct {
	db store.DBTX
}

// NewPostgresTrackerStore creates a new PostgreSQL implementation of the
// TrackerStore interface.
func NewPostgresTrackerStore(db store.DBTX) *PostgresTrackerStore {
	return &PostgresTrackerStore{
		db: db,
	}
}

// Ensure PostgresTrackerStore implements store.TrackerStore
var _ store.TrackerStore = (*PostgresTrackerStore)(nil)

// WithTx implements store.TrackerStore.WithTx
func (s *PostgresTrackerStore) WithTx(tx *sql.Tx) store.TrackerStore {
	return &PostgresTrackerStore{db: tx}
}

// Create implements store.TrackerStore.Create
func (s *PostgresTrackerStore) Create(ctx context.Context, tracker *domain.Tracker) error {
	if err := tracker.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	events, err := json.Marshal(tracker.Events)
	if err != nil {
		return fmt.Errorf("%w: failed to encode events: %v", store.ErrInvalidEntity, err)
	}

	// uuid.Nil marks an unowned tracker; persist it as NULL so the
	// foreign key constraint stays meaningful.
	var ownerID any
	if tracker.OwnerID != uuid.Nil {
		ownerID = tracker.OwnerID
	}

	query := `
		INSERT INTO trackers (id, code, owner_id, events, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.db.ExecContext(ctx, query,
		tracker.ID,
		tracker.Code,
		ownerID,
		events,
		tracker.CreatedAt,
	)
	if err != nil {
		return MapUniqueViolation(err, store.ErrTrackerExists)
	}

	return nil
}

// GetByCode implements store.TrackerStore.GetByCode
func (s *PostgresTrackerStore) GetByCode(ctx context.Context, code string) (*domain.Tracker, error) {
	query := `
		SELECT id, code, owner_id, events, created_at
		FROM trackers
		WHERE code = $1`

	tracker, err := scanTracker(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTrackerNotFound
		}
		return nil, MapError(err)
	}

	return tracker, nil
}

// scanTracker reads one tracker row, decoding the JSONB event payload and
// normalizing a NULL owner back to uuid.Nil.
func scanTracker(row rowScanner) (*domain.Tracker, error) {
	var (
		tracker domain.Tracker
		ownerID sql.Null[uuid.UUID]
		events  []byte
	)

	err := row.Scan(
		&tracker.ID,
		&tracker.Code,
		&ownerID,
		&events,
		&tracker.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		tracker.OwnerID = ownerID.V
	}

	if err := json.Unmarshal(events, &tracker.Events); err != nil {
		return nil, fmt.Errorf("failed to decode tracker events: %w", err)
	}

	return &tracker, nil
}
