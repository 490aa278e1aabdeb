// Package auth, as part of the authentication module.
// This file, `middleware.go`, holds the Access Guard: the single choke point
// every protected route passes through before reaching a handler.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/users"
)

// UserResolver finds the user named by a token subject.
type UserResolver interface {
	FindByIdentifier(id string) (users.User, error)
}

// Guard turns an Authorization header into a user.
type Guard struct {
	tokens *TokenService
	users  UserResolver
}

// NewGuard creates a Guard.
func NewGuard(tokens *TokenService, resolver UserResolver) *Guard {
	return &Guard{tokens: tokens, users: resolver}
}

// Authenticate validates a raw `Authorization` value ("Bearer {token}") and
// resolves its subject. Every failure matches ErrUnauthenticated; the cause
// (ErrInvalidToken, ErrExpiredToken, users.ErrNotFound) stays in the chain.
func (g *Guard) Authenticate(authorization string) (users.User, error) {
	tokenString, err := bearerToken(authorization)
	if err != nil {
		return users.User{}, apperror.NewAuthError(err.Error(), ErrUnauthenticated)
	}

	claims, err := g.tokens.Verify(tokenString)
	if err != nil {
		msg := "invalid token, please log in again"
		if errors.Is(err, ErrExpiredToken) {
			msg = "token has expired, please log in again"
		}
		return users.User{}, apperror.NewAuthError(msg, fmt.Errorf("%w: %w", ErrUnauthenticated, err))
	}

	user, err := g.users.FindByIdentifier(claims.Subject)
	if err != nil {
		return users.User{}, apperror.NewAuthError("invalid token, please log in again",
			fmt.Errorf("%w: %w", ErrUnauthenticated, err))
	}
	return user, nil
}

// Middleware authenticates the request and stores the user in its context.
// It has the standard `func(next http.Handler) http.Handler` shape so chi's
// `r.Use` accepts it directly.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
	})
}

// bearerToken extracts the token from "Bearer {token}"; the scheme is case-insensitive.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("authorization header is missing")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("authorization header format must be Bearer {token}")
	}
	return strings.TrimSpace(parts[1]), nil
}
