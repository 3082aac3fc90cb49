package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "user-1", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected three token segments, got %q", token)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Exp <= claims.Iat {
		t.Fatalf("expected expiry after issue time: %+v", claims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyJWT(tampered); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	past := time.Now().UTC().Add(-2 * time.Hour).Unix()
	token, err := SignJWT(Claims{Sub: "user-1", Iat: past, Exp: past + 60})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := VerifyJWT(token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := SignJWT(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, err := VerifyJWT(token); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}
}
