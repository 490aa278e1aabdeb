package users

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndFind(t *testing.T) {
	s := NewMemoryStore()

	u, err := s.Create("  Alice@Example.COM ", "alice", "hash", "Alice", "free")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := s.FindByIdentifier("alice")
	require.NoError(t, err)
	assert.Equal(t, u, byID)

	for _, login := range []string{"alice", "alice@example.com", "ALICE@example.com"} {
		got, err := s.FindByEmailOrIdentifier(login)
		require.NoError(t, err, login)
		assert.Equal(t, "alice", got.ID)
	}

	_, err = s.FindByIdentifier("bob")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByEmailOrIdentifier("bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RejectsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Create("alice@example.com", "alice", "hash", "Alice", "free")
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
		id    string
	}{
		{name: "same email", email: "alice@example.com", id: "alice2"},
		{name: "same email different case", email: "ALICE@example.com", id: "alice3"},
		{name: "same identifier", email: "other@example.com", id: "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.email, tt.id, "hash", "", "free")
			assert.ErrorIs(t, err, ErrDuplicateUser)
			assert.Equal(t, 1, s.Count())
		})
	}
}

func TestMemoryStore_UpdateTier(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.Create("alice@example.com", "alice", "hash", "Alice", "free")
	require.NoError(t, err)

	u, err := s.UpdateTier("alice", "pro")
	require.NoError(t, err)
	assert.Equal(t, "pro", u.Tier.String())
	assert.False(t, u.UpdatedAt.Before(created.UpdatedAt))

	again, err := s.FindByIdentifier("alice")
	require.NoError(t, err)
	assert.Equal(t, "pro", again.Tier.String())

	_, err = s.UpdateTier("nobody", "pro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	u, err := s.Create("alice@example.com", "alice", "hash", "Alice", "free")
	require.NoError(t, err)

	u.Tier = "enterprise"
	u.PasswordHash = "tampered"

	stored, err := s.FindByIdentifier("alice")
	require.NoError(t, err)
	assert.Equal(t, "free", stored.Tier.String())
	assert.Equal(t, "hash", stored.PasswordHash)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every goroutine races for the same email; only one may win
			_, err := s.Create("shared@example.com", fmt.Sprintf("user%d", i), "hash", "", "free")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateUser)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, s.Count())
}

func TestUser_Public(t *testing.T) {
	u := User{ID: "alice", Email: "a@example.com", DisplayName: "Alice", PasswordHash: "secret", Tier: "pro"}
	p := u.Public()
	assert.Equal(t, PublicUser{ID: "alice", Email: "a@example.com", DisplayName: "Alice", Tier: "pro"}, p)
}
