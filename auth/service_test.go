package auth

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/plans"
	"github.com/user/tierapi-go/users"
)

type testEnv struct {
	store   *users.MemoryStore
	tokens  *TokenService
	clock   *fakeClock
	service *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog, err := plans.Default()
	require.NoError(t, err)

	clock := &fakeClock{t: epoch}
	tokens := newTestTokens(t, 24*time.Hour, clock)
	store := users.NewMemoryStore()
	service, err := NewService(store, tokens, catalog, bcrypt.MinCost)
	require.NoError(t, err)
	return &testEnv{store: store, tokens: tokens, clock: clock, service: service}
}

func signupAlice(t *testing.T, env *testEnv) *TokenResponse {
	t.Helper()
	resp, err := env.service.Signup(context.Background(), SignupRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "wonderland",
	})
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	resp := signupAlice(t, env)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, int64(24*60*60), resp.ExpiresIn)
	assert.True(t, resp.ExpiresAt.Equal(epoch.Add(24*time.Hour)))

	claims, err := env.tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	u, err := env.store.FindByIdentifier("alice")
	require.NoError(t, err)
	assert.Equal(t, plans.Tier("free"), u.Tier)
	assert.Equal(t, "alice", u.DisplayName)
	assert.NotEqual(t, "wonderland", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("wonderland")))
}

func TestSignup_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	env := newTestEnv(t)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	_, err := env.service.Signup(ctx, SignupRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "wonderland",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[req-42]")
	assert.Contains(t, buf.String(), `"alice"`)
	assert.NotContains(t, buf.String(), "wonderland")
}

func TestSignup_ExplicitTier(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.Signup(context.Background(), SignupRequest{
		Email:       "bob@example.com",
		Username:    "bob",
		Password:    "builder1",
		DisplayName: "  Bob B. ",
		PackageTier: " Enterprise ",
	})
	require.NoError(t, err)

	u, err := env.store.FindByIdentifier("bob")
	require.NoError(t, err)
	assert.Equal(t, plans.Tier("enterprise"), u.Tier)
	assert.Equal(t, "Bob B.", u.DisplayName)
}

func TestSignup_InvalidTier(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.Signup(context.Background(), SignupRequest{
		Email:       "bob@example.com",
		Username:    "bob",
		Password:    "builder1",
		PackageTier: "platinum",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, plans.ErrInvalidTier)
	assert.True(t, apperror.IsValidationError(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid plan; allowed: free, pro, enterprise", appErr.Message)
	assert.Equal(t, 0, env.store.Count())
}

func TestSignup_Duplicate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		username string
	}{
		{name: "same username", email: "other@example.com", username: "alice"},
		{name: "same email", email: "alice@example.com", username: "alice2"},
		{name: "same email different case", email: "ALICE@Example.com", username: "alice3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			signupAlice(t, env)

			_, err := env.service.Signup(context.Background(), SignupRequest{
				Email:    tt.email,
				Username: tt.username,
				Password: "another-password",
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, users.ErrDuplicateUser)
			assert.True(t, apperror.IsConflictError(err))
			assert.Equal(t, 1, env.store.Count())
		})
	}
}

func TestSignup_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		req   SignupRequest
		field string
		rule  string
	}{
		{
			name:  "missing email",
			req:   SignupRequest{Username: "alice", Password: "wonderland"},
			field: "email", rule: "required",
		},
		{
			name:  "malformed email",
			req:   SignupRequest{Email: "not-an-email", Username: "alice", Password: "wonderland"},
			field: "email", rule: "email",
		},
		{
			name:  "username with at sign",
			req:   SignupRequest{Email: "a@example.com", Username: "al@ce", Password: "wonderland"},
			field: "username", rule: "identifier",
		},
		{
			name:  "username too short",
			req:   SignupRequest{Email: "a@example.com", Username: "al", Password: "wonderland"},
			field: "username", rule: "identifier",
		},
		{
			name:  "short password",
			req:   SignupRequest{Email: "a@example.com", Username: "alice", Password: "abc"},
			field: "password", rule: "min",
		},
		{
			name:  "password over bcrypt limit",
			req:   SignupRequest{Email: "a@example.com", Username: "alice", Password: strings.Repeat("é", 40)},
			field: "password", rule: "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.service.Signup(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.ValidationError, appErr.Type)
			assert.Equal(t, tt.rule, appErr.Details[tt.field])
			assert.Equal(t, 0, env.store.Count())
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	signupAlice(t, env)

	for _, login := range []string{"alice", "alice@example.com", "Alice@Example.COM"} {
		t.Run(login, func(t *testing.T) {
			resp, err := env.service.Login(login, "wonderland")
			require.NoError(t, err)

			claims, err := env.tokens.Verify(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Subject)
		})
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	signupAlice(t, env)

	_, wrongPassword := env.service.Login("alice", "not-the-password")
	_, unknownUser := env.service.Login("nobody", "wonderland")

	for _, err := range []error{wrongPassword, unknownUser} {
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, apperror.IsAuthError(err))
	}

	a, _ := apperror.FromError(wrongPassword)
	b, _ := apperror.FromError(unknownUser)
	assert.Equal(t, a.ToResponse(), b.ToResponse())
}
