package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelo/parcelo-api/internal/mocks"
	"github.com/parcelo/parcelo-api/internal/store"
)

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewNoopDB()
		defer func() { _ = db.Close() }()

		called := false
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			called = true
			require.NotNil(t, tx)
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("returns the function's error unchanged", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewNoopDB()
		defer func() { _ = db.Close() }()

		wantErr := errors.New("business rule violated")
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("sentinel errors survive the transaction boundary", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewNoopDB()
		defer func() { _ = db.Close() }()

		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return store.ErrEmailExists
		})

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rolls back and repanics on panic", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewNoopDB()
		defer func() { _ = db.Close() }()

		assert.Panics(t, func() {
			_ = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				panic("boom")
			})
		})
	})
}
