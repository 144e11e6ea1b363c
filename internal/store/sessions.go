package store

import (
	"sync"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"
)

// SessionRegistry maps issued bearer tokens to identity ids. It is the
// single authorization gate for writes: a token resolves only while its
// session exists, has not expired and has not been revoked.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRegistry{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue creates a session for the identity and returns its token.
// Multiple concurrent sessions per identity are allowed.
func (r *SessionRegistry) Issue(identity *models.Identity) (string, error) {
	token, err := util.RandomToken()
	if err != nil {
		return "", err
	}
	now := r.now()
	r.mu.Lock()
	r.sessions[token] = &models.Session{
		Token:      token,
		IdentityID: identity.ID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(r.ttl),
		Revoked:    false,
	}
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the identity id bound to the token. Absent, garbled,
// expired and revoked tokens all fail with ErrUnauthorized.
func (r *SessionRegistry) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	// copy the session while holding the lock; Revoke mutates it in place
	r.mu.RLock()
	sess, ok := r.sessions[token]
	var snapshot models.Session
	if ok {
		snapshot = *sess
	}
	r.mu.RUnlock()
	if !ok || snapshot.Revoked || r.now().After(snapshot.ExpiresAt) {
		return "", ErrUnauthorized
	}
	return snapshot.IdentityID, nil
}

// Revoke marks the session revoked (logout). Unknown tokens fail with
// ErrUnauthorized.
func (r *SessionRegistry) Revoke(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[token]
	if !ok || sess.Revoked {
		return ErrUnauthorized
	}
	sess.Revoked = true
	return nil
}
