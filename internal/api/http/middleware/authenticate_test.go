package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/kozydev/kozy-server/internal/api/http/context"
	"github.com/kozydev/kozy-server/internal/mocks"
	"github.com/kozydev/kozy-server/internal/testutil"
)

func TestAuthenticate_MissingToken(t *testing.T) {
	m := NewAuthenticate(&mocks.TokenManager{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokens := &mocks.TokenManager{}
	tokens.On("Parse", "bad-token").Return("", assert.AnError)

	m := NewAuthenticate(tokens, httpctx.NewManager(), testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NonUUIDSubject(t *testing.T) {
	tokens := &mocks.TokenManager{}
	tokens.On("Parse", "odd-token").Return("not-a-uuid", nil)

	m := NewAuthenticate(tokens, httpctx.NewManager(), testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer odd-token")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokens := &mocks.TokenManager{}
	tokens.On("Parse", "good-token").Return(userID.String(), nil)

	ctxMgr := httpctx.NewManager()
	m := NewAuthenticate(tokens, ctxMgr, testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, ok := ctxMgr.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, got)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
