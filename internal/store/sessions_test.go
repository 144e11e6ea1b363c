package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
)

func testIdentity() *models.Identity {
	return &models.Identity{ID: "id-1", Email: "a@test.com"}
}

func TestIssueAndResolve(t *testing.T) {
	r := NewSessionRegistry(time.Hour)

	token, err := r.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}

	identityID, err := r.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identityID != "id-1" {
		t.Errorf("resolved id = %q, want id-1", identityID)
	}
}

func TestResolve_RejectsGarbledTokens(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	if _, err := r.Issue(testIdentity()); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for _, token := range []string{"", "garbage", "Bearer abc", "0000"} {
		if _, err := r.Resolve(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestResolve_ExpiredSession(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	base := time.Now()
	r.now = func() time.Time { return base }

	token, err := r.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// still valid just before expiry
	r.now = func() time.Time { return base.Add(time.Hour - time.Second) }
	if _, err := r.Resolve(token); err != nil {
		t.Fatalf("Resolve before expiry failed: %v", err)
	}

	r.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, err := r.Resolve(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Resolve after expiry error = %v, want ErrUnauthorized", err)
	}
}

func TestRevoke(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	token, _ := r.Issue(testIdentity())

	if err := r.Revoke(token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := r.Resolve(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Resolve after revoke error = %v, want ErrUnauthorized", err)
	}
	// revoking twice is rejected
	if err := r.Revoke(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("second Revoke error = %v, want ErrUnauthorized", err)
	}
	if err := r.Revoke("unknown"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Revoke unknown token error = %v, want ErrUnauthorized", err)
	}
}

func TestResolve_ConcurrentWithRevoke(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	token, err := r.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// readers hammer Resolve while one writer revokes; run under -race
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				identityID, err := r.Resolve(token)
				// a reader sees either a live or a revoked session,
				// never a torn one
				if err == nil && identityID != "id-1" {
					t.Errorf("Resolve returned id %q, want id-1", identityID)
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := r.Revoke(token); err != nil {
			t.Errorf("Revoke failed: %v", err)
		}
	}()
	wg.Wait()

	if _, err := r.Resolve(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Resolve after concurrent revoke error = %v, want ErrUnauthorized", err)
	}
}

func TestMultipleSessionsPerIdentity(t *testing.T) {
	r := NewSessionRegistry(time.Hour)
	id := testIdentity()

	t1, _ := r.Issue(id)
	t2, _ := r.Issue(id)
	if t1 == t2 {
		t.Fatal("two sessions should have distinct tokens")
	}

	// revoking one leaves the other live
	if err := r.Revoke(t1); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := r.Resolve(t2); err != nil {
		t.Errorf("second session should survive: %v", err)
	}
}
