// Package auth, as part of the authentication module.
// This file, `context.go`, carries the authenticated user through the request
// context from the middleware to the handlers behind it.
package auth

import (
	"context"

	"github.com/user/tierapi-go/users"
)

// `contextKey` is a custom type for context keys. Using a custom type prevents collisions
// with context keys defined in other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying u.
func NewContextWithUser(ctx context.Context, u users.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext extracts the user stored by the middleware.
// The bool is false when the request never went through it.
func UserFromContext(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(userContextKey).(users.User)
	return u, ok
}
