package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
)

// Password policy enforced on registration.
const minPasswordLength = 6

// Manager owns account creation and password verification. It enforces the
// password policy, normalizes emails for uniqueness and never stores a
// plaintext password.
type Manager struct {
	userStore model.UserStore
	hasher    PasswordHasher
	logger    *logger.Logger
}

// NewManager creates a new identity Manager.
func NewManager(userStore model.UserStore, hasher PasswordHasher, logger *logger.Logger) *Manager {
	return &Manager{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// CreateUser validates email and password, enforces email uniqueness and
// persists a new account with a hashed password. All policy violations are
// collected into model.ValidationErrors so the caller can enumerate each one.
func (m *Manager) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	m.logger.Debug("identity: creating user", "email", email)

	var violations model.ValidationErrors

	if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, model.ValidationError{
			Code:        model.CodeInvalidEmail,
			Description: fmt.Sprintf("Email '%s' is invalid.", email),
		})
	}

	violations = append(violations, validatePassword(password)...)

	normalized := NormalizeEmail(email)

	existing, err := m.userStore.GetByEmail(ctx, normalized)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		m.logger.Error("identity: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		violations = append(violations, model.ValidationError{
			Code:        model.CodeDuplicateUserName,
			Description: fmt.Sprintf("Username '%s' is already taken.", email),
		})
	}

	if len(violations) > 0 {
		m.logger.Info("identity: registration rejected",
			"email", email,
			"violations", len(violations))
		return model.User{}, violations
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:              uuid.New(),
		Email:           email,
		NormalizedEmail: normalized,
		PasswordHash:    hash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	saved, err := m.userStore.Create(ctx, user)
	if err != nil {
		m.logger.Error("identity: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	m.logger.Info("identity: user created", "email", email, "user_id", saved.ID)

	return saved, nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (m *Manager) CheckPassword(user model.User, password string) bool {
	return m.hasher.Compare(user.PasswordHash, password)
}

// NormalizeEmail maps an email to its canonical form used for uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

func validatePassword(password string) model.ValidationErrors {
	var violations model.ValidationErrors

	if len(password) < minPasswordLength {
		violations = append(violations, model.ValidationError{
			Code:        model.CodePasswordTooShort,
			Description: fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength),
		})
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}

	if !hasDigit {
		violations = append(violations, model.ValidationError{
			Code:        model.CodePasswordRequiresDigit,
			Description: "Passwords must have at least one digit ('0'-'9').",
		})
	}
	if !hasLower {
		violations = append(violations, model.ValidationError{
			Code:        model.CodePasswordRequiresLower,
			Description: "Passwords must have at least one lowercase ('a'-'z').",
		})
	}
	if !hasUpper {
		violations = append(violations, model.ValidationError{
			Code:        model.CodePasswordRequiresUpper,
			Description: "Passwords must have at least one uppercase ('A'-'Z').",
		})
	}
	if !hasSymbol {
		violations = append(violations, model.ValidationError{
			Code:        model.CodePasswordRequiresNonAlphanumeric,
			Description: "Passwords must have at least one non alphanumeric character.",
		})
	}

	return violations
}
