package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelo/parcelo-api/internal/domain"
)

func TestNewTracker(t *testing.T) {
	t.Parallel()

	events := []domain.TrackingEvent{
		{Status: "in_transit", Location: "Rotterdam, NL", OccurredAt: time.Now().UTC()},
	}

	t.Run("owned tracker", func(t *testing.T) {
		t.Parallel()
		ownerID := uuid.New()
		tracker, err := domain.NewTracker("SHIP-123", ownerID, events)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, tracker.ID)
		assert.Equal(t, "SHIP-123", tracker.Code)
		assert.Equal(t, ownerID, tracker.OwnerID)
		assert.True(t, tracker.HasEvents())
	})

	t.Run("anonymous tracker", func(t *testing.T) {
		t.Parallel()
		tracker, err := domain.NewTracker("SHIP-123", uuid.Nil, events)
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, tracker.OwnerID)
	})

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		tracker, err := domain.NewTracker("", uuid.Nil, events)
		assert.Nil(t, tracker)
		assert.ErrorIs(t, err, domain.ErrTrackerCodeEmpty)
	})

	t.Run("no events", func(t *testing.T) {
		t.Parallel()
		tracker, err := domain.NewTracker("SHIP-123", uuid.Nil, nil)
		assert.Nil(t, tracker)
		assert.ErrorIs(t, err, domain.ErrTrackerNoEvents)
	})
}

func TestTrackerHasEvents(t *testing.T) {
	t.Parallel()

	tracker := &domain.Tracker{ID: uuid.New(), Code: "SHIP-123"}
	assert.False(t, tracker.HasEvents())

	tracker.Events = []domain.TrackingEvent{{Status: "delivered", OccurredAt: time.Now().UTC()}}
	assert.True(t, tracker.HasEvents())
}
