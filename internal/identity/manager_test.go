package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kozydev/kozy-server/internal/mocks"
	"github.com/kozydev/kozy-server/internal/model"
	"github.com/kozydev/kozy-server/internal/testutil"
)

func TestManager_CreateUser_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userStore.On("GetByEmail", mock.Anything, "A@B.COM").Return(model.User{}, model.ErrNotFound)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@b.com" && u.NormalizedEmail == "A@B.COM" && u.PasswordHash != ""
	})).Return(model.User{ID: uuid.New(), Email: "a@b.com"}, nil)

	m := NewManager(userStore, NewBcryptHasher(), testutil.MakeNoopLogger())

	user, err := m.CreateUser(ctx, "a@b.com", "Str0ng!pass")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	userStore.AssertExpectations(t)
}

func TestManager_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userStore.On("GetByEmail", mock.Anything, "TAKEN@B.COM").Return(model.User{ID: uuid.New()}, nil)

	m := NewManager(userStore, NewBcryptHasher(), testutil.MakeNoopLogger())

	_, err := m.CreateUser(ctx, "taken@b.com", "Str0ng!pass")
	require.Error(t, err)

	var violations model.ValidationErrors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 1)
	assert.Equal(t, model.CodeDuplicateUserName, violations[0].Code)
}

func TestManager_CreateUser_MultipleViolations(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userStore.On("GetByEmail", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound)

	m := NewManager(userStore, NewBcryptHasher(), testutil.MakeNoopLogger())

	// Short, all-lowercase, no digit, no symbol, no uppercase.
	_, err := m.CreateUser(ctx, "a@b.com", "abc")
	require.Error(t, err)

	var violations model.ValidationErrors
	require.ErrorAs(t, err, &violations)

	codes := make([]string, len(violations))
	for i, v := range violations {
		codes[i] = v.Code
	}
	assert.ElementsMatch(t, []string{
		model.CodePasswordTooShort,
		model.CodePasswordRequiresDigit,
		model.CodePasswordRequiresUpper,
		model.CodePasswordRequiresNonAlphanumeric,
	}, codes)
}

func TestManager_CreateUser_InvalidEmail(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userStore.On("GetByEmail", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound)

	m := NewManager(userStore, NewBcryptHasher(), testutil.MakeNoopLogger())

	_, err := m.CreateUser(ctx, "not-an-email", "Str0ng!pass")
	require.Error(t, err)

	var violations model.ValidationErrors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 1)
	assert.Equal(t, model.CodeInvalidEmail, violations[0].Code)
}

func TestManager_CheckPassword(t *testing.T) {
	hasher := NewBcryptHasher()
	hash, err := hasher.Hash("Str0ng!pass")
	require.NoError(t, err)

	m := NewManager(&mocks.UserStore{}, hasher, testutil.MakeNoopLogger())
	user := model.User{PasswordHash: hash}

	assert.True(t, m.CheckPassword(user, "Str0ng!pass"))
	assert.False(t, m.CheckPassword(user, "wrong-password"))
	assert.False(t, m.CheckPassword(model.User{}, "Str0ng!pass"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "A@B.COM", NormalizeEmail(" a@b.com "))
	assert.Equal(t, "USER@EXAMPLE.COM", NormalizeEmail("User@Example.com"))
}

func TestValidatePassword_Valid(t *testing.T) {
	assert.Empty(t, validatePassword("Str0ng!pass"))
}
