package tracking

import (
	"context"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
)

// Provider retrieves current shipment status for a tracking code from the
// carrier. Implementations may fail with transport-specific errors; the
// service layer treats any failure, and any result with no events, as a
// not-found condition.
type Provider interface {
	// Lookup fetches the shipment events for the given carrier code.
	// Pass uuid.Nil as ownerID for anonymous lookups. The returned tracker
	// is not persisted; its Events slice may be empty when the carrier has
	// no record of the code.
	Lookup(ctx context.Context, code string, ownerID uuid.UUID) (*domain.Tracker, error)
}
