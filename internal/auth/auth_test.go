package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestHashAndVerifyPassword verifies a hashed password matches itself and
// rejects a different candidate.
func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash equals plaintext")
	}
	if err := VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Errorf("verify failed for correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("verify succeeded for wrong password")
	}
}

// TestGenerateAPIKey verifies the key format and that two keys differ.
func TestGenerateAPIKey(t *testing.T) {
	a, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(a, APIKeyPrefix) {
		t.Errorf("key %q missing prefix %q", a, APIKeyPrefix)
	}
	if a == b {
		t.Error("two generated keys are identical")
	}
	// 48 bytes base64url without padding is 64 characters.
	if got := len(a) - len(APIKeyPrefix); got != 64 {
		t.Errorf("encoded key length = %d, want 64", got)
	}
}

// TestTokenRoundTrip verifies an issued token validates back to the same
// user identity.
func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, 30*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID := uuid.New()
	token, err := svc.Issue(userID, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "alice@example.com")
	}
}

// TestTokenExpired verifies that a token past its lifetime fails with
// ErrExpiredToken.
func TestTokenExpired(t *testing.T) {
	svc, err := NewTokenService(testSecret, 30*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(uuid.New(), "bob@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := svc.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("error = %v, want ErrExpiredToken", err)
	}
}

// TestTokenWrongKey verifies a token signed with a different secret is
// rejected.
func TestTokenWrongKey(t *testing.T) {
	issuer, _ := NewTokenService(testSecret, time.Hour)
	verifier, _ := NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)

	token, err := issuer.Issue(uuid.New(), "mallory@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

// TestTokenGarbage verifies obviously malformed input is rejected.
func TestTokenGarbage(t *testing.T) {
	svc, _ := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

// TestNewTokenServiceShortSecret verifies the minimum secret length.
func TestNewTokenServiceShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
}
