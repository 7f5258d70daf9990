package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/config"
	"github.com/parcelo/parcelo-api/internal/domain"
)

// trackResponse is the carrier's wire format for a tracking lookup.
type trackResponse struct {
	Code   string `json:"code"`
	Events []struct {
		Status    string    `json:"status"`
		Location  string    `json:"location"`
		Details   string    `json:"details"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"events"`
}

// Client implements the Provider interface against the carrier's HTTP API.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Ensure Client implements Provider
var _ Provider = (*Client)(nil)

// NewClient creates a carrier tracking client from the provided
// configuration. Returns an error if the configuration is incomplete.
func NewClient(logger *slog.Logger, cfg config.TrackingConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		logger:     logger.With(slog.String("component", "tracking_client")),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Lookup implements Provider.Lookup. A carrier 404 is not an error: it is
// returned as a tracker with an empty event list, which the service layer
// maps to its not-found taxonomy.
func (c *Client) Lookup(ctx context.Context, code string, ownerID uuid.UUID) (*domain.Tracker, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}

	reqURL := fmt.Sprintf("%s/v1/track/%s", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("carrier request failed",
			slog.String("code", code),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		c.logger.Debug("carrier has no record for code",
			slog.String("code", code))
		return c.emptyTracker(code, ownerID), nil
	default:
		c.logger.Warn("unexpected carrier response",
			slog.String("code", code),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: carrier returned status %d", ErrLookupFailed, resp.StatusCode)
	}

	var payload trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode carrier response: %v", ErrLookupFailed, err)
	}

	events := make([]domain.TrackingEvent, 0, len(payload.Events))
	for _, e := range payload.Events {
		events = append(events, domain.TrackingEvent{
			Status:     e.Status,
			Location:   e.Location,
			Details:    e.Details,
			OccurredAt: e.Timestamp,
		})
	}

	c.logger.Debug("carrier lookup completed",
		slog.String("code", code),
		slog.Int("event_count", len(events)))

	return &domain.Tracker{
		ID:        uuid.New(),
		Code:      code,
		OwnerID:   ownerID,
		Events:    events,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// emptyTracker builds the "carrier has no record" result.
func (c *Client) emptyTracker(code string, ownerID uuid.UUID) *domain.Tracker {
	return &domain.Tracker{
		ID:        uuid.New(),
		Code:      code,
		OwnerID:   ownerID,
		Events:    []domain.TrackingEvent{},
		CreatedAt: time.Now().UTC(),
	}
}
