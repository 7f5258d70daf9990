package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelo/parcelo-api/internal/api"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/mocks"
	"github.com/parcelo/parcelo-api/internal/store"
)

func newTrackerRouter(svc *mocks.MockAccountService) *chi.Mux {
	h := api.NewTrackerHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/tracking/{code}", h.Search)
	r.Post("/api/users/{id}/packages", h.AddPackage)
	return r
}

func testTracker(code string, ownerID uuid.UUID) *domain.Tracker {
	return &domain.Tracker{
		ID:      uuid.New(),
		Code:    code,
		OwnerID: ownerID,
		Events: []domain.TrackingEvent{
			{Status: "delivered", Location: "Amsterdam, NL", OccurredAt: time.Now().UTC()},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestTrackerHandlerSearch(t *testing.T) {
	t.Parallel()

	t.Run("known code returns tracking events", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockAccountService{
			SearchTrackingByCodeFn: func(ctx context.Context, code string) (*domain.Tracker, error) {
				assert.Equal(t, "SHIP-123", code)
				return testTracker(code, uuid.Nil), nil
			},
		}

		w := doJSON(t, newTrackerRouter(svc), http.MethodGet, "/api/tracking/SHIP-123", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp api.TrackerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "SHIP-123", resp.Code)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "delivered", resp.Events[0].Status)
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockAccountService{
			SearchTrackingByCodeFn: func(ctx context.Context, code string) (*domain.Tracker, error) {
				return nil, store.ErrTrackerNotFound
			},
		}

		w := doJSON(t, newTrackerRouter(svc), http.MethodGet, "/api/tracking/SHIP-404", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No tracking information found")
	})
}

func TestTrackerHandlerAddPackage(t *testing.T) {
	t.Parallel()

	t.Run("registers the code and returns the refreshed user", func(t *testing.T) {
		t.Parallel()
		user := testUser()
		svc := &mocks.MockAccountService{
			AddPackageFn: func(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
				assert.Equal(t, user.ID, userID)
				assert.Equal(t, "SHIP-123", code)
				user.Trackers = append(user.Trackers, *testTracker(code, userID))
				return user, nil
			},
		}

		w := doJSON(t, newTrackerRouter(svc), http.MethodPost, "/api/users/"+user.ID.String()+"/packages", map[string]any{
			"code": "SHIP-123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp api.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Trackers, 1)
		assert.Equal(t, "SHIP-123", resp.Trackers[0].Code)
	})

	t.Run("duplicate code returns 409", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockAccountService{
			AddPackageFn: func(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
				return nil, store.ErrTrackerExists
			},
		}

		w := doJSON(t, newTrackerRouter(svc), http.MethodPost, "/api/users/"+uuid.NewString()+"/packages", map[string]any{
			"code": "SHIP-123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Tracking code already registered")
	})

	t.Run("code without events returns 404", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockAccountService{
			AddPackageFn: func(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error) {
				return nil, store.ErrTrackerNotFound
			},
		}

		w := doJSON(t, newTrackerRouter(svc), http.MethodPost, "/api/users/"+uuid.NewString()+"/packages", map[string]any{
			"code": "SHIP-404",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing code returns 400", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockAccountService{}

		w := doJSON(t, newTrackerRouter(svc), http.MethodPost, "/api/users/"+uuid.NewString()+"/packages", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
