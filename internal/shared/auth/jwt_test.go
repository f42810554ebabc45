package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	token, err := SignJWT(Claims{Email: "jane@example.com", Role: RoleAdmin, StandardClaims: jwt.StandardClaims{Subject: "user-1"}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "jane@example.com" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt == 0 {
		t.Fatalf("expected default expiry")
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	expired, err := SignJWT(Claims{StandardClaims: jwt.StandardClaims{Subject: "user-1", ExpiresAt: time.Now().Add(-time.Minute).Unix()}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{StandardClaims: jwt.StandardClaims{Subject: "user-1"}})
	wrongKey, err := other.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": wrongKey,
		"garbage":   "not.a.jwt",
	} {
		if _, err := VerifyJWT(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestSecretRequiredInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "production")

	if _, err := SignJWT(Claims{StandardClaims: jwt.StandardClaims{Subject: "user-1"}}); !errors.Is(err, errMissingSecret) {
		t.Fatalf("expected errMissingSecret, got %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	allow := []string{"ops@example.com"}
	if !IsAdmin(Claims{Role: "Admin"}, nil) {
		t.Fatalf("role claim should grant admin")
	}
	if !IsAdmin(Claims{Email: "OPS@example.com"}, allow) {
		t.Fatalf("allow-listed email should grant admin")
	}
	if IsAdmin(Claims{Email: "dev@example.com"}, allow) {
		t.Fatalf("unlisted email must not be admin")
	}
	if IsAdmin(Claims{}, allow) {
		t.Fatalf("empty claims must not be admin")
	}
}
