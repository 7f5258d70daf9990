package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/parcelo/parcelo-api/internal/api/shared"
	"github.com/parcelo/parcelo-api/internal/service"
)

// TrackerHandler handles shipment tracking requests.
type TrackerHandler struct {
	accountService service.AccountService
	validator      *validator.Validate
}

// NewTrackerHandler creates a new TrackerHandler with the given dependencies.
func NewTrackerHandler(accountService service.AccountService) *TrackerHandler {
	return &TrackerHandler{
		accountService: accountService,
		validator:      validator.New(),
	}
}

// Search handles GET /api/tracking/{code}, the public anonymous lookup.
// Nothing is persisted; an unknown code yields 404.
func (h *TrackerHandler) Search(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Tracking code required")
		return
	}

	tracker, err := h.accountService.SearchTrackingByCode(r.Context(), code)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTrackerResponse(tracker))
}

// AddPackage handles POST /api/users/{id}/packages: it registers a tracking
// code for the user and returns the user with the refreshed tracker list.
func (h *TrackerHandler) AddPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req AddPackageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.accountService.AddPackage(r.Context(), id, req.Code)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}
