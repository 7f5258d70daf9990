package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account that owns parcel trackers.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only populated transiently during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Active         bool      `json:"active"`
	Trackers       []Tracker `json:"trackers"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name, email and password.
// It generates a new UUID, initializes an empty tracker list, and sets the
// creation/update timestamps. Returns an error if validation fails.
//
// NOTE: only the plaintext password is set here. The caller is responsible
// for hashing it before the user reaches the store.
func NewUser(name, email, password string, active bool) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password, // must be hashed before storage
		Active:    active,
		Trackers:  []Tracker{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// bcrypt truncates input beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from the store carry only the hash; one of the
		// two must be present.
		return ErrEmptyPassword
	}

	return nil
}

// HasTracker reports whether the user already owns a tracker with the
// given carrier code.
func (u *User) HasTracker(code string) bool {
	for _, t := range u.Trackers {
		if t.Code == code {
			return true
		}
	}
	return false
}

// validEmailFormat performs basic validation of email format: a single
// local part, an @, and a dotted domain. Full RFC 5322 validation is left
// to the transport layer's validator tags.
func validEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domain := email[atIndex+1:]
	dotIndex := -1
	for i, char := range domain {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domain)-1
}
