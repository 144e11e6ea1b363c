package store

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestCredentials() *CredentialStore {
	// min cost keeps the hashing fast in tests
	return NewCredentialStore(bcrypt.MinCost)
}

func TestRegister_AssignsIDAndStoresHash(t *testing.T) {
	s := newTestCredentials()

	id, err := s.Register("a@test.com", "pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id.ID == "" {
		t.Error("identity id should be assigned")
	}
	if id.Email != "a@test.com" {
		t.Errorf("email = %q, want a@test.com", id.Email)
	}
	if id.SecretHash == "pw" || id.SecretHash == "" {
		t.Error("secret must be stored as a hash")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestCredentials()

	if _, err := s.Register("a@test.com", "pw"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := s.Register("a@test.com", "other")
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("duplicate Register error = %v, want ErrDuplicateIdentity", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d after failed duplicate, want 1", s.Count())
	}
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	s := newTestCredentials()

	if _, err := s.Register("a@test.com", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	// different case is a different identity
	if _, err := s.Register("A@test.com", "pw"); err != nil {
		t.Fatalf("Register with different case failed: %v", err)
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestAuthenticate(t *testing.T) {
	s := newTestCredentials()
	registered, err := s.Register("a@test.com", "pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	id, err := s.Authenticate("a@test.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if id.ID != registered.ID {
		t.Errorf("authenticated id = %q, want %q", id.ID, registered.ID)
	}

	// wrong password and unknown email fail identically
	if _, err := s.Authenticate("a@test.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.Authenticate("nobody@test.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetByID(t *testing.T) {
	s := newTestCredentials()
	registered, _ := s.Register("a@test.com", "pw")

	got, ok := s.GetByID(registered.ID)
	if !ok {
		t.Fatal("GetByID should find a registered identity")
	}
	if got.Email != "a@test.com" {
		t.Errorf("email = %q, want a@test.com", got.Email)
	}

	if _, ok := s.GetByID("missing"); ok {
		t.Error("GetByID should miss an unknown id")
	}
}
