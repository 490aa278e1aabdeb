package auth

import "errors"

// Sentinel errors for the auth flow. Services wrap them in *apperror.AppError so
// handlers can pick a status code while callers and tests still match them with
// errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
