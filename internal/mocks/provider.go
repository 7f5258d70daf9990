package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/platform/tracking"
)

// MockProvider implements tracking.Provider for testing.
type MockProvider struct {
	// Custom behavior function
	LookupFn func(ctx context.Context, code string, ownerID uuid.UUID) (*domain.Tracker, error)

	// Default response values
	Tracker *domain.Tracker
	Err     error

	// Call tracking for verification
	LookupCalls struct {
		mu       sync.Mutex
		Count    int
		Codes    []string
		OwnerIDs []uuid.UUID
	}
}

// Ensure MockProvider implements tracking.Provider
var _ tracking.Provider = (*MockProvider)(nil)

// Lookup implements the tracking.Provider interface.
func (m *MockProvider) Lookup(
	ctx context.Context,
	code string,
	ownerID uuid.UUID,
) (*domain.Tracker, error) {
	m.LookupCalls.mu.Lock()
	m.LookupCalls.Count++
	m.LookupCalls.Codes = append(m.LookupCalls.Codes, code)
	m.LookupCalls.OwnerIDs = append(m.LookupCalls.OwnerIDs, ownerID)
	m.LookupCalls.mu.Unlock()

	if m.LookupFn != nil {
		return m.LookupFn(ctx, code, ownerID)
	}
	return m.Tracker, m.Err
}
