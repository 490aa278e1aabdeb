package users

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/user/tierapi-go/plans"
)

var (
	// ErrDuplicateUser is returned by Create when the email or identifier is taken.
	// It does not say which field collided.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("user not found")
)

// MemoryStore is a process-local user table indexed by identifier and by email.
// A single RWMutex guards both maps.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string // lower-cased email -> ID
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// NormalizeEmail is the canonical form under which emails are stored and matched.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new record. The password must already be hashed.
func (s *MemoryStore) Create(email, id, passwordHash, displayName string, tier plans.Tier) (User, error) {
	email = NormalizeEmail(email)
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byID[id]; taken {
		return User{}, ErrDuplicateUser
	}
	if _, taken := s.byEmail[email]; taken {
		return User{}, ErrDuplicateUser
	}

	now := s.now().UTC()
	u := &User{
		ID:           id,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Tier:         tier,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byID[id] = u
	s.byEmail[email] = id
	return *u, nil
}

// FindByIdentifier looks a user up by ID.
func (s *MemoryStore) FindByIdentifier(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

// FindByEmailOrIdentifier accepts either login alias. The identifier is tried
// first; identifiers cannot contain '@' so the two namespaces never overlap.
func (s *MemoryStore) FindByEmailOrIdentifier(value string) (User, error) {
	value = strings.TrimSpace(value)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.byID[value]; ok {
		return *u, nil
	}
	if id, ok := s.byEmail[NormalizeEmail(value)]; ok {
		return *s.byID[id], nil
	}
	return User{}, ErrNotFound
}

// UpdateTier changes the package tier of an existing user.
func (s *MemoryStore) UpdateTier(id string, tier plans.Tier) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	u.Tier = tier
	u.UpdatedAt = s.now().UTC()
	return *u, nil
}

// Count reports how many users are stored.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
