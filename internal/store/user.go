package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password.
	// Returns ErrEmailExists if the email is already taken (backed by the
	// unique index on users.email).
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including their trackers
	// ordered by registration time.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, including their
	// trackers ordered by registration time.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users, ordered by creation time, each including their
	// trackers ordered by registration time.
	List(ctx context.Context) ([]*domain.User, error)

	// Update persists a complete user record (name, email, hashed password,
	// active flag).
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// AddTrackerRef associates an already-persisted tracker with the user
	// and returns the updated user including the refreshed tracker list.
	// Returns ErrUserNotFound if the user does not exist.
	AddTrackerRef(ctx context.Context, userID uuid.UUID, tracker *domain.Tracker) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
