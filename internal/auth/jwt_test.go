package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	userID := uuid.New().String()
	email := "test@example.com"

	token, err := GenerateToken(userID, email, RoleFreeTrial)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	gotID, gotEmail, gotRole, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if gotID != userID || gotEmail != email || gotRole != RoleFreeTrial {
		t.Fatalf("claims mismatch: got %s %s %s", gotID, gotEmail, gotRole)
	}
}

func TestGenerateTokenEmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "x@example.com", RoleFreeTrial); err == nil {
		t.Fatalf("expected error for empty userID")
	}
}

func TestTokenTTLOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	t.Setenv("JWT_TTL_HOURS", "1")

	token, err := GenerateToken(uuid.New().String(), "x@example.com", RoleFreeTrial)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key-12345"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("failed to read exp: %v", err)
	}
	if remaining := time.Until(exp.Time); remaining > time.Hour || remaining < 55*time.Minute {
		t.Fatalf("expected roughly 1h of validity, got %v", remaining)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}
