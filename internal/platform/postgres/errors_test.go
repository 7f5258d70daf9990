package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/parcelo/parcelo-api/internal/store"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code, ConstraintName: "users_email_unique_idx"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		err := MapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(uniqueViolationCode))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("foreign key violation maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(foreignKeyViolationCode))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("not null violation maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgError(notNullViolationCode))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})

	t.Run("wrapped pg errors are still detected", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("insert failed: %w", pgError(uniqueViolationCode))
		assert.ErrorIs(t, MapError(wrapped), store.ErrDuplicate)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode)))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	t.Run("unique violation maps to the specific error", func(t *testing.T) {
		t.Parallel()
		err := MapUniqueViolation(pgError(uniqueViolationCode), store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("other errors fall back to MapError", func(t *testing.T) {
		t.Parallel()
		err := MapUniqueViolation(sql.ErrNoRows, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
	})
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "user"))

	err := CheckRowsAffected(fakeResult{rows: 0}, "user")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "user")

	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, ""), store.ErrNotFound)

	assert.Error(t, CheckRowsAffected(nil, "user"))
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver error")}, "user"))
}
