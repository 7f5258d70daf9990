package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	return &PostgresUserStore{
		db: db,
	}
}

// Ensure PostgresUserStore implements store.UserStore
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}

	query := `
		INSERT INTO users (id, name, email, hashed_password, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, active, created_at, updated_at
		FROM users
		WHERE id = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadTrackers(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, active, created_at, updated_at
		FROM users
		WHERE email = $1`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadTrackers(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, active, created_at, updated_at
		FROM users
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	if err := s.loadTrackersForAll(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

// Update implements store.UserStore.Update.
// The caller must provide a complete user record including HashedPassword.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}

	query := `
		UPDATE users
		SET name = $2, email = $3, hashed_password = $4, active = $5, updated_at = now()
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.Active,
	)
	if err != nil {
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	return nil
}

// AddTrackerRef implements store.UserStore.AddTrackerRef.
// The tracker row itself carries the owner reference, so the append is
// materialized by claiming the tracker for the user; the user row's
// updated_at is bumped and the refreshed record returned.
func (s *PostgresUserStore) AddTrackerRef(
	ctx context.Context,
	userID uuid.UUID,
	tracker *domain.Tracker,
) (*domain.User, error) {
	claim := `UPDATE trackers SET owner_id = $2 WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, claim, tracker.ID, userID); err != nil {
		return nil, MapError(err)
	}

	touch := `UPDATE users SET updated_at = now() WHERE id = $1`
	result, err := s.db.ExecContext(ctx, touch, userID)
	if err != nil {
		return nil, MapError(err)
	}
	if err := CheckRowsAffected(result, "user"); err != nil {
		return nil, store.ErrUserNotFound
	}

	return s.GetByID(ctx, userID)
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresUserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Trackers = []domain.Tracker{}
	return &user, nil
}

// loadTrackersForAll populates the tracker lists of every listed user with a
// single batched query, avoiding one trackers query per user.
func (s *PostgresUserStore) loadTrackersForAll(ctx context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	query := `
		SELECT id, code, owner_id, events, created_at
		FROM trackers
		WHERE owner_id = ANY($1)
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var trackers []domain.Tracker
	for rows.Next() {
		tracker, err := scanTracker(rows)
		if err != nil {
			return MapError(err)
		}
		trackers = append(trackers, *tracker)
	}
	if err := rows.Err(); err != nil {
		return MapError(err)
	}

	attachTrackers(users, trackers)
	return nil
}

// attachTrackers distributes trackers to their owners. The input is ordered
// by registration time, so appending preserves each user's tracker order.
func attachTrackers(users []*domain.User, trackers []domain.Tracker) {
	byOwner := make(map[uuid.UUID]*domain.User, len(users))
	for _, user := range users {
		byOwner[user.ID] = user
	}

	for _, tracker := range trackers {
		if owner, ok := byOwner[tracker.OwnerID]; ok {
			owner.Trackers = append(owner.Trackers, tracker)
		}
	}
}

// loadTrackers populates the user's tracker list, ordered by registration
// time so the append-only ordering of the domain model is preserved.
func (s *PostgresUserStore) loadTrackers(ctx context.Context, user *domain.User) error {
	query := `
		SELECT id, code, owner_id, events, created_at
		FROM trackers
		WHERE owner_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		tracker, err := scanTracker(rows)
		if err != nil {
			return MapError(err)
		}
		user.Trackers = append(user.Trackers, *tracker)
	}
	return MapError(rows.Err())
}
