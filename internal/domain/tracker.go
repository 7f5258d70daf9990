package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tracker validation errors
var (
	// ErrTrackerIDEmpty is returned when a tracker ID is empty or nil.
	ErrTrackerIDEmpty = errors.New("tracker ID cannot be empty")

	// ErrTrackerCodeEmpty is returned when a tracker's carrier code is empty.
	ErrTrackerCodeEmpty = errors.New("tracker code cannot be empty")

	// ErrTrackerNoEvents is returned when a tracker has no shipment events.
	// A tracker is only persisted once the carrier has reported at least one.
	ErrTrackerNoEvents = errors.New("tracker must have at least one shipment event")
)

// TrackingEvent is a single shipment status entry reported by the carrier.
type TrackingEvent struct {
	Status     string    `json:"status"`
	Location   string    `json:"location,omitempty"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Tracker represents a registered shipment-tracking code and the events
// retrieved for it from the carrier. Trackers are immutable after creation.
type Tracker struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	OwnerID   uuid.UUID       `json:"owner_id,omitempty"` // uuid.Nil for anonymous lookups
	Events    []TrackingEvent `json:"events"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTracker creates a Tracker for the given carrier code and owner.
// Pass uuid.Nil as ownerID for an anonymous lookup result.
// Returns an error if validation fails.
func NewTracker(code string, ownerID uuid.UUID, events []TrackingEvent) (*Tracker, error) {
	tracker := &Tracker{
		ID:        uuid.New(),
		Code:      code,
		OwnerID:   ownerID,
		Events:    events,
		CreatedAt: time.Now().UTC(),
	}

	if err := tracker.Validate(); err != nil {
		return nil, err
	}

	return tracker, nil
}

// Validate checks if the Tracker has valid data.
// Returns an error if any field fails validation.
func (t *Tracker) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTrackerIDEmpty
	}

	if t.Code == "" {
		return ErrTrackerCodeEmpty
	}

	if len(t.Events) == 0 {
		return ErrTrackerNoEvents
	}

	return nil
}

// HasEvents reports whether the carrier returned any shipment events.
// An empty event sequence is the carrier's way of signalling "not found".
func (t *Tracker) HasEvents() bool {
	return len(t.Events) > 0
}
