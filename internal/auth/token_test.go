package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("claims email = %q, want alice@example.com", claims.Email)
	}

	exp := claims.ExpiresAt.Time
	iat := claims.IssuedAt.Time
	if got := exp.Sub(iat); got != time.Hour {
		t.Fatalf("token lifetime = %v, want 1h", got)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyBadSignature(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)

	token, err := other.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected foreign-secret token to fail verification")
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(token); err == nil {
			t.Fatalf("expected %q to fail verification", token)
		}
	}
}
