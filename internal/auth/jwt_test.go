package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-for-jwt"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, "Alice Novak")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.FullName != "Alice Novak" {
		t.Errorf("expected full name 'Alice Novak', got %q", claims.FullName)
	}
	if claims.ID == "" {
		t.Error("expected a JTI to be set")
	}
}

func TestUniqueJTI(t *testing.T) {
	t1, err := GenerateToken(testSecret, 1, "Alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	t2, err := GenerateToken(testSecret, 1, "Alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	c1, _ := ValidateToken(testSecret, t1)
	c2, _ := ValidateToken(testSecret, t2)
	if c1.ID == c2.ID {
		t.Error("expected distinct JTIs for separate tokens")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "Alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Error("expected validation with wrong secret to fail")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected garbage token to fail validation")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	claims := Claims{
		UserID:   1,
		FullName: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := ValidateToken(testSecret, signed); err == nil {
		t.Error("expected expired token to fail validation")
	}
}
