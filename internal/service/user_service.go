package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/settleapp/settle/internal/apperr"
	"github.com/settleapp/settle/internal/auth"
	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/storage"
)

// UserService handles account registration, login and profile updates.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *UserService {
	return &UserService{authenticator: authenticator, jwtManager: jwtManager, store: store}
}

// Register creates an account and returns the user with a session token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", apperr.Validationf("name, email and password are required")
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) || errors.Is(err, auth.ErrWeakPassword) {
			return nil, "", apperr.Validationf("%s", err.Error())
		}
		slog.Error("Registration failed", "email", models.NormalizeEmail(email), "error", err)
		return nil, "", apperr.Dependency("failed to register user", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", apperr.Dependency("failed to generate token", err)
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns the user with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validationf("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", models.NormalizeEmail(email))
		return nil, "", apperr.Unauthenticatedf("invalid email or password")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", apperr.Dependency("failed to generate token", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// UpdateProfile changes the actor's display name and/or avatar URL.
// Empty fields are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, name, avatarURL string) (*models.User, error) {
	if name != "" {
		actor.Name = name
	}
	if avatarURL != "" {
		actor.Avatar = avatarURL
	}

	if err := s.store.UpdateUser(ctx, actor); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		slog.Error("UpdateProfile failed", "user_id", actor.ID, "error", err)
		return nil, apperr.Dependency("failed to update profile", err)
	}

	return actor, nil
}

// UpdatePreferences changes the actor's notification preference.
// A nil flag means no change.
func (s *UserService) UpdatePreferences(ctx context.Context, actor *models.User, notifications *bool) (*models.User, error) {
	if notifications == nil {
		return actor, nil
	}
	actor.Notifications = *notifications

	if err := s.store.UpdateUser(ctx, actor); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		slog.Error("UpdatePreferences failed", "user_id", actor.ID, "error", err)
		return nil, apperr.Dependency("failed to update preferences", err)
	}

	return actor, nil
}

// ChangePassword verifies the old password and replaces it with a new one.
func (s *UserService) ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validationf("old and new passwords are required")
	}

	if _, err := s.authenticator.Authenticate(ctx, actor.Email, oldPassword); err != nil {
		return apperr.Unauthenticatedf("invalid old password")
	}
	if err := s.authenticator.ValidateCredential(newPassword); err != nil {
		return apperr.Validationf("%s", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Dependency("failed to hash password", err)
	}
	actor.PasswordHash = string(hashed)

	if err := s.store.UpdateUser(ctx, actor); err != nil {
		slog.Error("ChangePassword failed", "user_id", actor.ID, "error", err)
		return apperr.Dependency("failed to change password", err)
	}

	slog.Info("Password changed", "user_id", actor.ID)
	return nil
}
