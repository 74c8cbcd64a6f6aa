package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

func TestIsProtectedPath(t *testing.T) {
	protected := []string{
		"/api/user_mgt/users",
		"/api/user_mgt/users/",
		"/api/user_mgt/users/42",
		"/api/book_mgt/books/7",
	}
	for _, p := range protected {
		assert.True(t, isProtectedPath(p), "path %q should be protected", p)
	}

	public := []string{
		"/api/book_mgt/books",
		"/api/user_mgt/signup",
		"/api/user_mgt/login",
		"/api/user_mgt/token/refresh",
		"/api/user_mgt/users/abc",
		"/health",
		"/",
	}
	for _, p := range public {
		assert.False(t, isProtectedPath(p), "path %q should be public", p)
	}
}

func newResolveFixture(t *testing.T, name string) (*Authenticator, *repository.UserRepository, *crypto.TokenService) {
	t.Helper()
	db, err := repository.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := repository.NewUserRepository(db)
	tokens := crypto.NewTokenService("test-secret", time.Minute, time.Hour)
	return NewAuthenticator(tokens, users), users, tokens
}

func TestResolve(t *testing.T) {
	auth, users, tokens := newResolveFixture(t, "mw_resolve")

	user := &model.User{
		Email: "mw@x.com", PasswordHash: "x", Role: "user", Active: true,
	}
	require.NoError(t, users.Create(context.Background(), user))

	pair, err := tokens.IssuePair(user.ID, user.Role)
	require.NoError(t, err)

	// No header at all.
	r := httptest.NewRequest("GET", "/api/user_mgt/users", nil)
	_, err = auth.Resolve(r)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	// Wrong scheme.
	r.Header.Set("Authorization", "Basic abc")
	_, err = auth.Resolve(r)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	// Garbage token.
	r.Header.Set("Authorization", "Bearer garbage")
	_, err = auth.Resolve(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Refresh token not accepted as access credential.
	r.Header.Set("Authorization", "Bearer "+pair.Refresh)
	_, err = auth.Resolve(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Valid access token resolves to the user.
	r.Header.Set("Authorization", "Bearer "+pair.Access)
	authCtx, err := auth.Resolve(r)
	require.NoError(t, err)
	assert.True(t, authCtx.Authenticated)
	assert.Equal(t, user.ID, authCtx.User.ID)
}

func TestResolveInactiveUser(t *testing.T) {
	auth, users, tokens := newResolveFixture(t, "mw_inactive")

	user := &model.User{
		Email: "inactive@x.com", PasswordHash: "x", Role: "user", Active: true,
	}
	require.NoError(t, users.Create(context.Background(), user))

	pair, err := tokens.IssuePair(user.ID, user.Role)
	require.NoError(t, err)

	user.Active = false
	require.NoError(t, users.Update(context.Background(), user))

	r := httptest.NewRequest("GET", "/api/user_mgt/users", nil)
	r.Header.Set("Authorization", "Bearer "+pair.Access)
	_, err = auth.Resolve(r)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromContextZeroValue(t *testing.T) {
	authCtx := FromContext(context.Background())
	assert.False(t, authCtx.Authenticated)
	assert.Nil(t, authCtx.User)
}
