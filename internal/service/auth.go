package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozydev/kozy-server/internal/identity"
	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
)

// IdentityManager is the account-creation and password-verification surface
// consumed by the auth service. Backed by any persistence engine.
type IdentityManager interface {
	CreateUser(ctx context.Context, email, password string) (model.User, error)
	CheckPassword(user model.User, password string) bool
}

// Auth composes the identity manager and token manager for login,
// registration and account listing.
type Auth struct {
	userStore model.UserStore
	identity  IdentityManager
	tokens    model.TokenManager
	logger    *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	identity IdentityManager,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		identity:  identity,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies credentials and mints a token whose subject is the account
// ID. An unknown email and a wrong password fail identically with
// model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: processing login", "email", email)

	user, err := a.userStore.GetByEmail(ctx, identity.NormalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login rejected", "email", email)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.identity.CheckPassword(user, password) {
		a.logger.Info("Auth service: login rejected", "email", email)
		return "", model.ErrInvalidCredentials
	}

	tokenString, err := a.tokens.Generate(user.ID.String())
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed", "email", email, "user_id", user.ID)

	return tokenString, nil
}

// Register delegates account creation to the identity manager and mints a
// token for the new account. Validation failures pass through intact so the
// caller can enumerate every violation.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: processing registration", "email", email)

	user, err := a.identity.CreateUser(ctx, email, password)
	if err != nil {
		return "", err
	}

	tokenString, err := a.tokens.Generate(user.ID.String())
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: registration completed", "email", email, "user_id", user.ID)

	return tokenString, nil
}

// ListUsers returns every account without filtering or pagination.
func (a *Auth) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := a.userStore.List(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to list users", "error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
