package service

import (
	"fmt"
)

// AccountServiceError is a custom error type for unexpected account service
// failures. Expected business outcomes (not found, conflict, invalid
// credentials) are never wrapped in this type; they surface as the sentinel
// errors from the store and auth packages.
type AccountServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for AccountServiceError.
func (e *AccountServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("account service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("account service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AccountServiceError) Unwrap() error {
	return e.Err
}

// NewAccountServiceError creates a new AccountServiceError.
func NewAccountServiceError(operation, message string, err error) *AccountServiceError {
	return &AccountServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
