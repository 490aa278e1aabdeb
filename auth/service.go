// Package auth is responsible for handling authentication and authorization logic.
// This includes user signup, login, token issuance (JWT) and token validation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/plans"
	"github.com/user/tierapi-go/users"
)

const (
	tokenTypeBearer = "bearer"
	// bcrypt ignores input past this many bytes, so longer passwords are refused
	maxPasswordBytes = 72
)

// UserStore is the slice of the credential store the auth flow needs.
type UserStore interface {
	Create(email, id, passwordHash, displayName string, tier plans.Tier) (users.User, error)
	FindByIdentifier(id string) (users.User, error)
	FindByEmailOrIdentifier(value string) (users.User, error)
}

// Service orchestrates signup and login.
type Service struct {
	store      UserStore
	tokens     *TokenService
	catalog    *plans.Catalog
	bcryptCost int
	// dummyHash is compared against when a login names no known user, so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewService creates a new Service. Dependencies are injected by main.
func NewService(store UserStore, tokens *TokenService, catalog *plans.Catalog, bcryptCost int) (*Service, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("tierapi-dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}
	return &Service{
		store:      store,
		tokens:     tokens,
		catalog:    catalog,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Signup creates a user and logs them straight in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperror.NewValidationError("invalid input", ErrInvalidInput).
			WithDetails(map[string]string{"password": "max"})
	}

	tier := s.catalog.DefaultTier()
	if req.PackageTier != "" {
		resolved, err := s.catalog.Resolve(req.PackageTier)
		if err != nil {
			return nil, apperror.NewValidationError(err.Error(), err)
		}
		tier = resolved
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user, err := s.store.Create(req.Email, req.Username, string(hashed), displayName, tier)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateUser) {
			return nil, apperror.NewConflictError("user already exists", err)
		}
		return nil, apperror.NewInternalError("failed to create user", err)
	}
	log.Printf("[%s] user %q signed up on tier %s", middleware.GetReqID(ctx), user.ID, user.Tier)

	return s.issue(user.ID)
}

// Login authenticates by username or email. An unknown user and a wrong
// password produce the same error.
func (s *Service) Login(login, password string) (*TokenResponse, error) {
	user, err := s.store.FindByEmailOrIdentifier(login)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			return nil, apperror.NewInternalError("failed to look up user", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}
	return s.issue(user.ID)
}

func (s *Service) issue(userID string) (*TokenResponse, error) {
	token, expiresAt, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.tokens.Lifetime().Seconds()),
		ExpiresAt:   expiresAt.UTC(),
	}, nil
}

func invalidCredentials() error {
	return apperror.NewAuthError("invalid credentials", ErrInvalidCredentials)
}
