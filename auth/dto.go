// Package auth provides authentication and authorization functionality
// This file, `dto.go`, defines the request and response bodies of the
// /auth endpoints. `validate` tags are checked by go-playground/validator.
package auth

import "time"

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email" example:"user@example.com"`
	Username    string `json:"username" validate:"required,identifier" example:"newuser"`
	Password    string `json:"password" validate:"required,min=6,max=72" example:"strongpassword123"`
	DisplayName string `json:"display_name" validate:"omitempty,max=64" example:"New User"`
	// PackageTier is optional; signup falls back to the lowest catalog tier.
	PackageTier string `json:"package_tier,omitempty" example:"free"`
}

// LoginRequest represents the login request payload.
// Login may be either the username or the email; Username and Email are
// accepted as aliases for clients that send OAuth2-style bodies.
type LoginRequest struct {
	Login    string `json:"login" example:"user@example.com"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" example:"strongpassword123"`
}

// identity returns the first non-empty login alias.
func (r LoginRequest) identity() string {
	for _, v := range []string{r.Login, r.Username, r.Email} {
		if v != "" {
			return v
		}
	}
	return ""
}

// TokenResponse represents the authentication token response
type TokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string    `json:"token_type" example:"bearer"`
	ExpiresIn   int64     `json:"expires_in" example:"86400"` // seconds
	ExpiresAt   time.Time `json:"expires_at" example:"2026-01-02T12:00:00Z"`
}
