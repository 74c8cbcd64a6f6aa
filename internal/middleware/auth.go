package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrMissingCredentials = errors.New("Authentication credentials were not provided")
	ErrInvalidToken       = errors.New("Invalid token")
)

// Paths that refuse anonymous access. Matching is on the path alone,
// independent of the HTTP verb; the books collection stays public.
var protectedPaths = []*regexp.Regexp{
	regexp.MustCompile(`^/api/user_mgt/users/?$`),
	regexp.MustCompile(`^/api/user_mgt/users/\d+$`),
	regexp.MustCompile(`^/api/book_mgt/books/\d+$`),
}

// AuthContext is the per-request resolved identity. User is nil when
// Authenticated is false.
type AuthContext struct {
	User          *model.User
	Authenticated bool
}

type contextKey struct{}

// Authenticator resolves bearer tokens to live user records. It is the
// single authentication entry point; every route sees the AuthContext
// it produces.
type Authenticator struct {
	tokens *crypto.TokenService
	users  *repository.UserRepository
}

func NewAuthenticator(tokens *crypto.TokenService, users *repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve extracts and validates the bearer token on a request.
// A missing or malformed Authorization header yields
// ErrMissingCredentials; a token that fails validation, or that
// resolves to a missing or inactive user, yields ErrInvalidToken.
// Whether either is fatal depends on the route and is decided by the
// Authenticate middleware.
func (a *Authenticator) Resolve(r *http.Request) (AuthContext, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return AuthContext{}, ErrMissingCredentials
	}

	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return AuthContext{}, ErrMissingCredentials
	}

	claims, err := a.tokens.Validate(tokenString, crypto.TokenTypeAccess)
	if err != nil {
		return AuthContext{}, ErrInvalidToken
	}

	user, err := a.users.GetByID(r.Context(), claims.UserID)
	if err != nil || !user.Active {
		return AuthContext{}, ErrInvalidToken
	}

	return AuthContext{User: user, Authenticated: true}, nil
}

// Authenticate returns middleware that resolves the caller's identity
// once per request. Protected paths reject with 401 (no credentials)
// or 403 (bad token); everything else proceeds with an anonymous
// context so handlers can still distinguish logged-in callers.
func Authenticate(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, err := a.Resolve(r)
			if err != nil && isProtectedPath(r.URL.Path) {
				if errors.Is(err, ErrMissingCredentials) {
					writeFailed(w, http.StatusUnauthorized, err.Error())
				} else {
					writeFailed(w, http.StatusForbidden, err.Error())
				}
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the AuthContext attached by Authenticate. The
// zero value means anonymous.
func FromContext(ctx context.Context) AuthContext {
	authCtx, _ := ctx.Value(contextKey{}).(AuthContext)
	return authCtx
}

func isProtectedPath(path string) bool {
	for _, pattern := range protectedPaths {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// writeFailed emits the uniform failure envelope without importing the
// handler package.
func writeFailed(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "failed",
		"data":    []any{},
		"message": msg,
	})
}
