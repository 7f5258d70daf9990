package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	AddTrackerRefFn func(ctx context.Context, userID uuid.UUID, tracker *domain.Tracker) (*domain.User, error)

	// Data for the default implementation, keyed by email
	Users map[string]*domain.User

	// Errors returned by the default implementation when set
	CreateError error
	UpdateError error
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	for email, existing := range m.Users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, taken := m.Users[user.Email]; taken {
					return store.ErrEmailExists
				}
				delete(m.Users, email)
			}
			m.Users[user.Email] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

// AddTrackerRef implements the UserStore interface.
func (m *MockUserStore) AddTrackerRef(
	ctx context.Context,
	userID uuid.UUID,
	tracker *domain.Tracker,
) (*domain.User, error) {
	if m.AddTrackerRefFn != nil {
		return m.AddTrackerRefFn(ctx, userID, tracker)
	}

	for _, user := range m.Users {
		if user.ID == userID {
			user.Trackers = append(user.Trackers, *tracker)
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// WithTx implements the UserStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
