package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parcelo/parcelo-api/internal/domain"
	"github.com/parcelo/parcelo-api/internal/platform/logger"
	"github.com/parcelo/parcelo-api/internal/platform/tracking"
	"github.com/parcelo/parcelo-api/internal/service/auth"
	"github.com/parcelo/parcelo-api/internal/store"
)

// UserUpdate carries the optional fields of a partial user update.
// A nil field leaves the stored value unchanged. Active is deliberately not
// optional: it is always overwritten with the supplied value, including
// false; there is no leave-unchanged sentinel for it.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Active   bool
}

// AccountService provides the account and package-tracking operations.
type AccountService interface {
	// Authenticate verifies the email/password pair and returns the user
	// together with a signed access token embedding the user id.
	// Returns store.ErrUserNotFound for an unknown email and
	// auth.ErrInvalidCredentials for a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)

	// Register creates a new user with a hashed password and an empty
	// tracker list. Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, name, email, password string, active bool) (*domain.User, error)

	// UpdateUser applies a partial update to an existing user.
	// Returns store.ErrUserNotFound if the user does not exist and
	// store.ErrEmailExists when changing to an email that is taken.
	UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)

	// GetUser retrieves a user by id. Returns store.ErrUserNotFound if absent.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// SearchTrackingByCode performs an anonymous carrier lookup. Nothing is
	// persisted. Returns store.ErrTrackerNotFound when the carrier has no
	// events for the code or the lookup fails.
	SearchTrackingByCode(ctx context.Context, code string) (*domain.Tracker, error)

	// AddPackage registers a tracking code for the user and returns the
	// user with the refreshed tracker list.
	// Returns store.ErrUserNotFound for an unknown user,
	// store.ErrTrackerExists when the code is already registered, and
	// store.ErrTrackerNotFound when the carrier has no events for it.
	AddPackage(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error)
}

// accountServiceImpl implements the AccountService interface.
type accountServiceImpl struct {
	userStore    store.UserStore
	trackerStore store.TrackerStore
	provider     tracking.Provider
	jwtService   auth.JWTService
	verifier     auth.PasswordVerifier
	hasher       auth.PasswordHasher
	db           *sql.DB
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	userStore store.UserStore,
	trackerStore store.TrackerStore,
	provider tracking.Provider,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	hasher auth.PasswordHasher,
	db *sql.DB,
	log *slog.Logger,
) (AccountService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if trackerStore == nil {
		return nil, domain.NewValidationError("trackerStore", "cannot be nil", domain.ErrValidation)
	}
	if provider == nil {
		return nil, domain.NewValidationError("provider", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &accountServiceImpl{
		userStore:    userStore,
		trackerStore: trackerStore,
		provider:     provider,
		jwtService:   jwtService,
		verifier:     verifier,
		hasher:       hasher,
		db:           db,
		logger:       log.With(slog.String("component", "account_service")),
	}, nil
}

// Authenticate implements AccountService.Authenticate.
// The operation is stateless: the token is issued, never stored.
func (s *accountServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication attempt for unknown email")
			return nil, "", err
		}
		log.Error("failed to look up user for authentication", "error", err)
		return nil, "", fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch", "user_id", user.ID)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue access token", "error", err, "user_id", user.ID)
		return nil, "", NewAccountServiceError("authenticate", "failed to issue token", err)
	}

	log.Debug("user authenticated", "user_id", user.ID)
	return user, token, nil
}

// Register implements AccountService.Register.
// Email uniqueness is enforced by the unique index on users.email; the
// store's constraint-violation signal is the authoritative conflict source,
// so no pre-check is performed here.
func (s *accountServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
	active bool,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password, active)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, NewAccountServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration with existing email")
			return nil, err
		}
		log.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// UpdateUser implements AccountService.UpdateUser.
func (s *accountServiceImpl) UpdateUser(
	ctx context.Context,
	id uuid.UUID,
	update UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Email != nil {
			user.Email = *update.Email
		}
		if update.Password != nil {
			if *update.Password == "" {
				return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyPassword)
			}
			hashed, err := s.hasher.Hash(*update.Password)
			if err != nil {
				return NewAccountServiceError("update", "failed to hash password", err)
			}
			user.HashedPassword = hashed
		}
		// Active carries no leave-unchanged sentinel: the supplied value
		// always wins, including false.
		user.Active = update.Active

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated, err = txStore.GetByID(ctx, id)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			log.Debug("update for unknown user", "user_id", id)
		case errors.Is(err, store.ErrEmailExists):
			log.Debug("update to an email that is already taken", "user_id", id)
		default:
			log.Error("failed to update user", "error", err, "user_id", id)
		}
		return nil, err
	}

	log.Info("user updated", "user_id", id)
	return updated, nil
}

// GetUser implements AccountService.GetUser.
func (s *accountServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers implements AccountService.ListUsers.
func (s *accountServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SearchTrackingByCode implements AccountService.SearchTrackingByCode.
// Carrier transport errors are logged and reported as not-found: from the
// caller's point of view there is no tracking information for the code.
func (s *accountServiceImpl) SearchTrackingByCode(
	ctx context.Context,
	code string,
) (*domain.Tracker, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tracker, err := s.provider.Lookup(ctx, code, uuid.Nil)
	if err != nil {
		log.Warn("carrier lookup failed", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrTrackerNotFound, err)
	}

	if !tracker.HasEvents() {
		log.Debug("carrier reported no events", "code", code)
		return nil, store.ErrTrackerNotFound
	}

	return tracker, nil
}

// AddPackage implements AccountService.AddPackage.
//
// The workflow order is fixed: owner existence check, idempotency guard,
// carrier lookup, persistence. The carrier call happens before the database
// transaction opens so no external I/O is held inside it; tracker insert
// and owner association then commit or roll back together. The unique index
// on trackers.code backs the idempotency guard against concurrent
// registration of the same code.
func (s *accountServiceImpl) AddPackage(
	ctx context.Context,
	userID uuid.UUID,
	code string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("package registration for unknown user", "user_id", userID)
			return nil, err
		}
		log.Error("failed to look up user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to register package: %w", err)
	}

	// Fast-path duplicate check; the unique index remains authoritative.
	if _, err := s.trackerStore.GetByCode(ctx, code); err == nil {
		log.Debug("tracking code already registered", "code", code)
		return nil, store.ErrTrackerExists
	} else if !errors.Is(err, store.ErrTrackerNotFound) {
		log.Error("failed to check tracking code", "error", err, "code", code)
		return nil, fmt.Errorf("failed to register package: %w", err)
	}

	tracker, err := s.provider.Lookup(ctx, code, userID)
	if err != nil {
		log.Warn("carrier lookup failed", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrTrackerNotFound, err)
	}
	if !tracker.HasEvents() {
		log.Debug("carrier reported no events", "code", code)
		return nil, store.ErrTrackerNotFound
	}

	var updated *domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.trackerStore.WithTx(tx).Create(ctx, tracker); err != nil {
			return err
		}

		var err error
		updated, err = s.userStore.WithTx(tx).AddTrackerRef(ctx, userID, tracker)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrTrackerExists) {
			log.Debug("tracking code registered concurrently", "code", code)
			return nil, err
		}
		log.Error("failed to persist package registration",
			"error", err,
			"user_id", userID,
			"code", code)
		return nil, fmt.Errorf("failed to register package: %w", err)
	}

	log.Info("package registered",
		"user_id", userID,
		"code", code,
		"tracker_id", tracker.ID)
	return updated, nil
}
