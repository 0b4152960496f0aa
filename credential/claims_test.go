package credential

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, subject string, exp int64) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": subject}
	if exp != 0 {
		claims["exp"] = exp
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := signTestToken(t, "u1", exp)

	got, ok := TokenExpiry(token)
	if !ok {
		t.Fatal("expected exp claim to be readable")
	}
	if got != exp {
		t.Fatalf("expected exp %d, got %d", exp, got)
	}
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Fatal("expected opaque token to report no expiry")
	}
	if _, ok := TokenExpiry(""); ok {
		t.Fatal("expected empty token to report no expiry")
	}
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	token := signTestToken(t, "u1", 0)
	if _, ok := TokenExpiry(token); ok {
		t.Fatal("expected token without exp to report no expiry")
	}
}

func TestTokenSubject(t *testing.T) {
	token := signTestToken(t, "subject-9", time.Now().Add(time.Hour).Unix())

	sub, ok := TokenSubject(token)
	if !ok || sub != "subject-9" {
		t.Fatalf("expected subject-9, got %q (ok=%v)", sub, ok)
	}

	if _, ok := TokenSubject("opaque"); ok {
		t.Fatal("expected opaque token to report no subject")
	}
}
