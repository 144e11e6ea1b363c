package util

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == password {
		t.Error("hash must not equal the plaintext")
	}

	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Error("empty password should return error")
	}

	// same password must hash differently (random salt)
	hashed2, _ := HashPassword(password, bcrypt.MinCost)
	if hashed == hashed2 {
		t.Error("identical passwords should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Correct1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPassword("Correct1", hashed) {
		t.Error("correct password should verify")
	}
	if CheckPassword("Wrong1", hashed) {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password should not verify")
	}
	if CheckPassword("Correct1", "") {
		t.Error("empty stored hash should not verify")
	}
}

func TestRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := RandomToken()
		if err != nil {
			t.Fatalf("RandomToken failed: %v", err)
		}
		// 32 bytes of entropy encode to 43 base64 characters
		if len(token) != 43 {
			t.Fatalf("token length = %d, want 43", len(token))
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}
