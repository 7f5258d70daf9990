package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/mocks"
	"github.com/parcelo/parcelo-api/internal/service"
	"github.com/parcelo/parcelo-api/internal/service/auth"
	"github.com/parcelo/parcelo-api/internal/store"
)

// testEnv bundles an AccountService with the mocks behind it so tests can
// both drive the service and inspect the stores.
type testEnv struct {
	svc      service.AccountService
	users    *mocks.MockUserStore
	trackers *mocks.MockTrackerStore
	provider *mocks.MockProvider
	jwt      *mocks.MockJWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    mocks.NewMockUserStore(),
		trackers: mocks.NewMockTrackerStore(),
		provider: &mocks.MockProvider{},
		jwt:      &mocks.MockJWTService{},
	}

	svc, err := service.NewAccountService(
		env.users,
		env.trackers,
		env.provider,
		env.jwt,
		&mocks.MockPasswordVerifier{},
		&mocks.MockPasswordHasher{},
		mocks.NewNoopDB(),
		nil,
	)
	require.NoError(t, err)

	env.svc = svc
	return env
}

// registerUser is a helper that registers a user through the service and
// fails the test on error.
func registerUser(t *testing.T, env *testEnv, name, email, password string) *domain.User {
	t.Helper()
	user, err := env.svc.Register(context.Background(), name, email, password, true)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func carrierEvents() []domain.TrackingEvent {
	return []domain.TrackingEvent{
		{
			Status:     "in_transit",
			Location:   "Rotterdam, NL",
			OccurredAt: time.Now().UTC().Add(-2 * time.Hour),
		},
		{
			Status:     "out_for_delivery",
			Location:   "Utrecht, NL",
			OccurredAt: time.Now().UTC(),
		},
	}
}

// stubCarrier makes the provider answer every lookup with a fresh tracker
// carrying the given events, owned by whoever asked.
func stubCarrier(env *testEnv, events []domain.TrackingEvent) {
	env.provider.LookupFn = func(ctx context.Context, code string, ownerID uuid.UUID) (*domain.Tracker, error) {
		return &domain.Tracker{
			ID:        uuid.New(),
			Code:      code,
			OwnerID:   ownerID,
			Events:    events,
			CreatedAt: time.Now().UTC(),
		}, nil
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		user, err := env.svc.Register(context.Background(), "Ada", "ada@example.com", "password123", true)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "hashed:password123", user.HashedPassword)
		assert.Empty(t, user.Password, "plaintext password must not survive registration")
		assert.Empty(t, user.Trackers)
		assert.True(t, user.Active)

		stored, err := env.users.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email returns ErrEmailExists", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		registerUser(t, env, "Ada", "ada@example.com", "password123")

		user, err := env.svc.Register(context.Background(), "Imposter", "ada@example.com", "other-password", true)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid input returns ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		user, err := env.svc.Register(context.Background(), "", "ada@example.com", "password123", true)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return user and token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		user, token, err := env.svc.Authenticate(context.Background(), "ada@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, "token-"+registered.ID.String(), token)
	})

	t.Run("wrong password returns ErrInvalidCredentials and no token", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registerUser(t, env, "Ada", "ada@example.com", "password123")

		user, token, err := env.svc.Authenticate(context.Background(), "ada@example.com", "wrong-password")
		assert.Nil(t, user)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email returns ErrUserNotFound", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		user, token, err := env.svc.Authenticate(context.Background(), "nobody@example.com", "password123")
		assert.Nil(t, user)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("token signing failure does not leak sentinel errors", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registerUser(t, env, "Ada", "ada@example.com", "password123")
		env.jwt.GenerateError = errors.New("signing key unavailable")

		_, token, err := env.svc.Authenticate(context.Background(), "ada@example.com", "password123")
		assert.Empty(t, token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	str := func(s string) *string { return &s }

	t.Run("name-only update leaves email and password untouched", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")
		originalHash := registered.HashedPassword

		updated, err := env.svc.UpdateUser(context.Background(), registered.ID, service.UserUpdate{
			Name:   str("Ada Lovelace"),
			Active: false,
		})
		require.NoError(t, err)

		assert.Equal(t, "Ada Lovelace", updated.Name)
		assert.Equal(t, "ada@example.com", updated.Email)
		assert.Equal(t, originalHash, updated.HashedPassword)
		assert.False(t, updated.Active, "active is always overwritten, even to false")
	})

	t.Run("password update re-hashes", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		updated, err := env.svc.UpdateUser(context.Background(), registered.ID, service.UserUpdate{
			Password: str("new-password"),
			Active:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "hashed:new-password", updated.HashedPassword)

		_, _, err = env.svc.Authenticate(context.Background(), "ada@example.com", "new-password")
		assert.NoError(t, err)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		updated, err := env.svc.UpdateUser(context.Background(), registered.ID, service.UserUpdate{
			Password: str(""),
			Active:   true,
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		updated, err := env.svc.UpdateUser(context.Background(), uuid.New(), service.UserUpdate{
			Name:   str("Ghost"),
			Active: true,
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("changing to a taken email returns ErrEmailExists", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		registerUser(t, env, "Ada", "ada@example.com", "password123")
		grace := registerUser(t, env, "Grace", "grace@example.com", "password456")

		updated, err := env.svc.UpdateUser(context.Background(), grace.ID, service.UserUpdate{
			Email:  str("ada@example.com"),
			Active: true,
		})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestSearchTrackingByCode(t *testing.T) {
	t.Parallel()

	t.Run("returns tracker with events, persists nothing", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, carrierEvents())

		tracker, err := env.svc.SearchTrackingByCode(context.Background(), "SHIP-123")
		require.NoError(t, err)
		assert.Equal(t, "SHIP-123", tracker.Code)
		assert.Equal(t, uuid.Nil, tracker.OwnerID, "search lookups are anonymous")
		assert.Len(t, tracker.Events, 2)

		assert.Empty(t, env.trackers.Trackers, "search must not persist trackers")
	})

	t.Run("empty event list returns ErrTrackerNotFound", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, nil)

		tracker, err := env.svc.SearchTrackingByCode(context.Background(), "SHIP-404")
		assert.Nil(t, tracker)
		assert.ErrorIs(t, err, store.ErrTrackerNotFound)
	})

	t.Run("carrier failure surfaces as ErrTrackerNotFound", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.provider.Err = errors.New("carrier timeout")

		tracker, err := env.svc.SearchTrackingByCode(context.Background(), "SHIP-500")
		assert.Nil(t, tracker)
		assert.ErrorIs(t, err, store.ErrTrackerNotFound)
	})
}

func TestAddPackage(t *testing.T) {
	t.Parallel()

	t.Run("registers the code and returns the refreshed user", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, carrierEvents())
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		updated, err := env.svc.AddPackage(context.Background(), registered.ID, "SHIP-123")
		require.NoError(t, err)
		require.Len(t, updated.Trackers, 1)
		assert.Equal(t, "SHIP-123", updated.Trackers[0].Code)
		assert.Equal(t, registered.ID, updated.Trackers[0].OwnerID)

		stored, err := env.trackers.GetByCode(context.Background(), "SHIP-123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, stored.OwnerID)

		require.Equal(t, 1, env.provider.LookupCalls.Count)
		assert.Equal(t, registered.ID, env.provider.LookupCalls.OwnerIDs[0])
	})

	t.Run("second registration of the same code returns ErrTrackerExists", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, carrierEvents())
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		first, err := env.svc.AddPackage(context.Background(), registered.ID, "SHIP-123")
		require.NoError(t, err)
		require.Len(t, first.Trackers, 1)

		second, err := env.svc.AddPackage(context.Background(), registered.ID, "SHIP-123")
		assert.Nil(t, second)
		assert.ErrorIs(t, err, store.ErrTrackerExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		current, err := env.users.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		assert.Len(t, current.Trackers, 1, "duplicate registration must not grow the tracker list")
	})

	t.Run("code without events returns ErrTrackerNotFound and persists nothing", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, nil)
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		updated, err := env.svc.AddPackage(context.Background(), registered.ID, "SHIP-404")
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrTrackerNotFound)

		assert.Empty(t, env.trackers.Trackers)
		current, err := env.users.GetByID(context.Background(), registered.ID)
		require.NoError(t, err)
		assert.Empty(t, current.Trackers)
	})

	t.Run("unknown user returns ErrUserNotFound before any carrier call", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, carrierEvents())

		updated, err := env.svc.AddPackage(context.Background(), uuid.New(), "SHIP-123")
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Zero(t, env.provider.LookupCalls.Count)
	})

	t.Run("concurrent duplicate insert maps to ErrTrackerExists", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		stubCarrier(env, carrierEvents())
		registered := registerUser(t, env, "Ada", "ada@example.com", "password123")

		// Pre-check misses, but the insert collides: the unique index on
		// the code is the authority.
		env.trackers.GetByCodeFn = func(ctx context.Context, code string) (*domain.Tracker, error) {
			return nil, store.ErrTrackerNotFound
		}
		env.trackers.CreateError = store.ErrTrackerExists

		updated, err := env.svc.AddPackage(context.Background(), registered.ID, "SHIP-123")
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, store.ErrTrackerExists)
	})
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	stubCarrier(env, carrierEvents())
	ctx := context.Background()

	registered, err := env.svc.Register(ctx, "Ada", "ada@example.com", "password123", true)
	require.NoError(t, err)

	authenticated, token, err := env.svc.Authenticate(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, registered.ID, authenticated.ID)

	withPackage, err := env.svc.AddPackage(ctx, authenticated.ID, "SHIP-123")
	require.NoError(t, err)
	require.Len(t, withPackage.Trackers, 1)

	_, err = env.svc.AddPackage(ctx, authenticated.ID, "SHIP-123")
	require.ErrorIs(t, err, store.ErrTrackerExists)

	final, err := env.svc.GetUser(ctx, authenticated.ID)
	require.NoError(t, err)
	assert.Len(t, final.Trackers, 1)
}
