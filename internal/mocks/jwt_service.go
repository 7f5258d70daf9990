package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default response values
	Token         string
	Claims        *auth.Claims
	GenerateError error
	ValidateError error
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.GenerateError != nil {
		return "", m.GenerateError
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "token-" + userID.String(), nil
}

// ValidateToken implements the auth.JWTService interface.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.ValidateError != nil {
		return nil, m.ValidateError
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return &auth.Claims{
		UserID:    uuid.New(),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}
