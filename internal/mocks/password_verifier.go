package mocks

import (
	"github.com/parcelo/parcelo-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// The default implementation treats a hash of the form "hashed:<password>"
// as matching <password>, pairing with MockPasswordHasher.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// CompareError is returned by the default implementation when set.
	CompareError error
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareError != nil {
		return m.CompareError
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// MockPasswordHasher implements auth.PasswordHasher for testing.
// The default implementation returns "hashed:<password>".
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)

	// HashError is returned by the default implementation when set.
	HashError error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return "hashed:" + password, nil
}
