package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/service"
)

// MockAccountService implements service.AccountService for testing the
// transport layer.
type MockAccountService struct {
	AuthenticateFn         func(ctx context.Context, email, password string) (*domain.User, string, error)
	RegisterFn             func(ctx context.Context, name, email, password string, active bool) (*domain.User, error)
	UpdateUserFn           func(ctx context.Context, id uuid.UUID, update service.UserUpdate) (*domain.User, error)
	GetUserFn              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsersFn            func(ctx context.Context) ([]*domain.User, error)
	SearchTrackingByCodeFn func(ctx context.Context, code string) (*domain.Tracker, error)
	AddPackageFn           func(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error)
}

// Ensure MockAccountService implements service.AccountService
var _ service.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	return m.AuthenticateFn(ctx, email, password)
}

func (m *MockAccountService) Register(ctx context.Context, name, email, password string, active bool) (*domain.User, error) {
	return m.RegisterFn(ctx, name, email, password, active)
}

func (m *MockAccountService) UpdateUser(ctx context.Context, id uuid.UUID, update service.UserUpdate) (*domain.User, error) {
	return m.UpdateUserFn(ctx, id, update)
}

func (m *MockAccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetUserFn(ctx, id)
}

func (m *MockAccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.ListUsersFn(ctx)
}

func (m *MockAccountService) SearchTrackingByCode(ctx context.Context, code string) (*domain.Tracker, error) {
	return m.SearchTrackingByCodeFn(ctx, code)
}

func (m *MockAccountService) AddPackage(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
	return m.AddPackageFn(ctx, userID, code)
}
