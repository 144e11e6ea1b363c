package store

import (
	"sync"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore holds registered identities. Email is the unique login
// key and is matched exactly (case-sensitive).
type CredentialStore struct {
	mu         sync.RWMutex
	byEmail    map[string]*models.Identity
	byID       map[string]*models.Identity
	bcryptCost int
}

func NewCredentialStore(bcryptCost int) *CredentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialStore{
		byEmail:    make(map[string]*models.Identity),
		byID:       make(map[string]*models.Identity),
		bcryptCost: bcryptCost,
	}
}

// Seed loads previously persisted identities, replacing nothing — it is
// meant to be called once at startup before the store is shared.
func (s *CredentialStore) Seed(identities []models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range identities {
		id := identities[i]
		s.byEmail[id.Email] = &id
		s.byID[id.ID] = &id
	}
}

// Register creates a new identity. It fails with ErrDuplicateIdentity if
// the email is already taken; the store is unchanged in that case.
func (s *CredentialStore) Register(email, password string) (*models.Identity, error) {
	s.mu.RLock()
	_, taken := s.byEmail[email]
	s.mu.RUnlock()
	if taken {
		return nil, ErrDuplicateIdentity
	}

	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// re-check under the write lock; a concurrent Register may have won
	if _, taken := s.byEmail[email]; taken {
		return nil, ErrDuplicateIdentity
	}
	id := &models.Identity{
		ID:         uuid.NewString(),
		Email:      email,
		SecretHash: hash,
		CreatedAt:  time.Now(),
	}
	s.byEmail[email] = id
	s.byID[id.ID] = id

	out := *id
	return &out, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both fail with ErrInvalidCredentials so callers cannot tell
// which field was wrong.
func (s *CredentialStore) Authenticate(email, password string) (*models.Identity, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !util.CheckPassword(password, id.SecretHash) {
		return nil, ErrInvalidCredentials
	}
	out := *id
	return &out, nil
}

// GetByID looks up an identity by its opaque id.
func (s *CredentialStore) GetByID(id string) (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	out := *found
	return &out, true
}

// Count returns the number of registered identities.
func (s *CredentialStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
