package mocks

import (
	"context"
	"database/sql"

	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/store"
)

// MockTrackerStore implements store.TrackerStore for testing.
type MockTrackerStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, tracker *domain.Tracker) error
	GetByCodeFn func(ctx context.Context, code string) (*domain.Tracker, error)

	// Data for the default implementation, keyed by carrier code
	Trackers map[string]*domain.Tracker

	// Error returned by the default Create when set
	CreateError error
}

// Ensure MockTrackerStore implements store.TrackerStore
var _ store.TrackerStore = (*MockTrackerStore)(nil)

// NewMockTrackerStore creates a new mock store with initialized defaults.
func NewMockTrackerStore() *MockTrackerStore {
	return &MockTrackerStore{
		Trackers: make(map[string]*domain.Tracker),
	}
}

// Create implements the TrackerStore interface.
func (m *MockTrackerStore) Create(ctx context.Context, tracker *domain.Tracker) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tracker)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Trackers[tracker.Code]; exists {
		return store.ErrTrackerExists
	}

	m.Trackers[tracker.Code] = tracker
	return nil
}

// GetByCode implements the TrackerStore interface.
func (m *MockTrackerStore) GetByCode(ctx context.Context, code string) (*domain.Tracker, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}

	tracker, exists := m.Trackers[code]
	if !exists {
		return nil, store.ErrTrackerNotFound
	}
	return tracker, nil
}

// WithTx implements the TrackerStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockTrackerStore) WithTx(tx *sql.Tx) store.TrackerStore {
	return m
}
