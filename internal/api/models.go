package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Active   *bool  `json:"active,omitempty"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UpdateUserRequest defines the payload for the user update endpoint.
// Omitted fields are left unchanged; active has no leave-unchanged form and
// is always written, defaulting to false when absent.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Active   bool    `json:"active"`
}

// AddPackageRequest defines the payload for registering a tracking code.
type AddPackageRequest struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// User is the authenticated account, without credential material.
	User UserResponse `json:"user"`

	// Token is the JWT access token used for API authorization.
	Token string `json:"token"`
}

// UserResponse is the wire representation of a user. Credential material
// never appears here.
type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Active    bool              `json:"active"`
	Trackers  []TrackerResponse `json:"trackers"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TrackerResponse is the wire representation of a registered tracker.
type TrackerResponse struct {
	ID        uuid.UUID              `json:"id"`
	Code      string                 `json:"code"`
	Events    []domain.TrackingEvent `json:"events"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewUserResponse converts a domain user to its wire representation.
func NewUserResponse(user *domain.User) UserResponse {
	trackers := make([]TrackerResponse, 0, len(user.Trackers))
	for i := range user.Trackers {
		trackers = append(trackers, NewTrackerResponse(&user.Trackers[i]))
	}

	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Active:    user.Active,
		Trackers:  trackers,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewTrackerResponse converts a domain tracker to its wire representation.
// The owner is implied by the enclosing user payload and not repeated.
func NewTrackerResponse(tracker *domain.Tracker) TrackerResponse {
	return TrackerResponse{
		ID:        tracker.ID,
		Code:      tracker.Code,
		Events:    tracker.Events,
		CreatedAt: tracker.CreatedAt,
	}
}
