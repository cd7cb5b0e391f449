package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kozydev/kozy-server/internal/identity"
	"github.com/kozydev/kozy-server/internal/mocks"
	"github.com/kozydev/kozy-server/internal/model"
	"github.com/kozydev/kozy-server/internal/testutil"
)

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	user := model.User{ID: userID, Email: "a@b.com"}

	userStore.On("GetByEmail", mock.Anything, identity.NormalizeEmail("a@b.com")).Return(user, nil)
	identityMgr.On("CheckPassword", user, "Str0ng!pass").Return(true)
	tokens.On("Generate", userID.String()).Return("signed-token", nil)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())

	token, err := a.Login(ctx, "a@b.com", "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	tokens.AssertCalled(t, "Generate", userID.String())
}

func TestAuth_Login_IndistinguishableFailures(t *testing.T) {
	ctx := context.Background()

	// Unknown email.
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}
	userStore.On("GetByEmail", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())
	_, errUnknown := a.Login(ctx, "missing@b.com", "Str0ng!pass")

	// Wrong password.
	userStore2 := &mocks.UserStore{}
	identityMgr2 := &mocks.IdentityManager{}
	user := model.User{ID: uuid.New(), Email: "a@b.com"}
	userStore2.On("GetByEmail", mock.Anything, mock.Anything).Return(user, nil)
	identityMgr2.On("CheckPassword", user, "wrong").Return(false)

	a2 := NewAuth(userStore2, identityMgr2, tokens, testutil.MakeNoopLogger())
	_, errWrong := a2.Login(ctx, "a@b.com", "wrong")

	// Both paths must be indistinguishable to the caller.
	require.ErrorIs(t, errUnknown, model.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, model.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	identityMgr.On("CreateUser", mock.Anything, "a@b.com", "Str0ng!pass").
		Return(model.User{ID: userID, Email: "a@b.com"}, nil)
	tokens.On("Generate", userID.String()).Return("signed-token", nil)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())

	token, err := a.Register(ctx, "a@b.com", "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestAuth_Register_ValidationErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}

	violations := model.ValidationErrors{
		{Code: model.CodeDuplicateUserName, Description: "Username 'a@b.com' is already taken."},
	}
	identityMgr.On("CreateUser", mock.Anything, "a@b.com", "Str0ng!pass").
		Return(model.User{}, violations)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())

	_, err := a.Register(ctx, "a@b.com", "Str0ng!pass")
	require.Error(t, err)

	var got model.ValidationErrors
	require.ErrorAs(t, err, &got)
	require.Len(t, got, 1)
	assert.Equal(t, model.CodeDuplicateUserName, got[0].Code)
	tokens.AssertNotCalled(t, "Generate", mock.Anything)
}

func TestAuth_Register_TokenIssueError(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}

	userID := uuid.New()
	identityMgr.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
		Return(model.User{ID: userID}, nil)
	tokens.On("Generate", userID.String()).Return("", model.ErrMissingSigningKey)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())

	_, err := a.Register(ctx, "a@b.com", "Str0ng!pass")
	require.ErrorIs(t, err, model.ErrMissingSigningKey)
}

func TestAuth_ListUsers(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	identityMgr := &mocks.IdentityManager{}
	tokens := &mocks.TokenManager{}

	users := []model.User{
		{ID: uuid.New(), Email: "a@b.com"},
		{ID: uuid.New(), Email: "c@d.com"},
	}
	userStore.On("List", mock.Anything).Return(users, nil)

	a := NewAuth(userStore, identityMgr, tokens, testutil.MakeNoopLogger())

	got, err := a.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestAuth_ListUsers_Error(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userStore.On("List", mock.Anything).Return(nil, assert.AnError)

	a := NewAuth(userStore, &mocks.IdentityManager{}, &mocks.TokenManager{}, testutil.MakeNoopLogger())

	_, err := a.ListUsers(ctx)
	require.Error(t, err)
}
