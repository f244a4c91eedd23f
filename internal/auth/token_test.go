package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, expiresAt, err := tm.Issue(42, domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	ttl := time.Until(expiresAt)
	if ttl > TokenTTL || ttl < TokenTTL-5*time.Second {
		t.Errorf("expiry should be %v from issuance, got %v", TokenTTL, ttl)
	}

	identity, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != 42 {
		t.Errorf("UserID = %d, want 42", identity.UserID)
	}
	if identity.Role != domain.RoleUser {
		t.Errorf("Role = %q, want %q", identity.Role, domain.RoleUser)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	tm := NewTokenManager(testSecret)
	if _, err := tm.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Errorf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret)

	expired := signedToken(t, testSecret, Claims{
		UserID: 7,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-10 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-5 * time.Minute)),
		},
	})

	if _, err := tm.Verify(expired); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	other := NewTokenManager("another-secret")
	token, _, err := other.Issue(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tm := NewTokenManager(testSecret)
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := NewTokenManager(testSecret)
	if _, err := tm.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_UnknownRoleRejected(t *testing.T) {
	tm := NewTokenManager(testSecret)

	forged := signedToken(t, testSecret, Claims{
		UserID: 9,
		Role:   domain.RoleName("SUPERUSER"),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	})

	if _, err := tm.Verify(forged); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("unknown role must be rejected, got %v", err)
	}
}

func signedToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
