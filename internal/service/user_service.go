package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/service/auth"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// UserService provides account and profile operations.
type UserService interface {
	// Register creates a new account. Returns store.ErrEmailExists when
	// the email is already taken.
	Register(ctx context.Context, email, nickname, password string) (*domain.User, error)

	// Authenticate verifies the credentials and returns the user.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetProfile retrieves a user by their ID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile updates the user's nickname.
	UpdateProfile(ctx context.Context, userID uuid.UUID, nickname string) (*domain.User, error)

	// ChangePassword replaces the user's password after verifying the
	// current one. Returns ErrWrongPassword on mismatch.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new account with a hashed password.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, nickname, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, nickname, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", email)
		}
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Authenticate verifies the credentials and returns the user.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("login attempt for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated",
		"user_id", user.ID)

	return user, nil
}

// GetProfile retrieves a user by their ID.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the user's nickname.
// Uses the pattern of retrieving the full user, updating the specific
// field, and writing the complete object back inside a transaction.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	nickname string,
) (*domain.User, error) {
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname cannot be empty", domain.ErrValidation)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Nickname = nickname
		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update profile",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("profile updated",
		"user_id", userID)

	return updated, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.verifier.Compare(user.HashedPassword, currentPassword); err != nil {
			return ErrWrongPassword
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.HashedPassword = hashed
		return txStore.Update(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, ErrWrongPassword) && !store.IsNotFoundError(err) {
			s.logger.Error("failed to change password",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("password changed",
		"user_id", userID)

	return nil
}
