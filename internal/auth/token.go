package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// TokenTTL is the fixed lifetime of an access token. Tokens are short-lived
// by design: the system favors frequent re-authentication over revocation
// infrastructure, and there is no refresh mechanism.
const TokenTTL = 5 * time.Minute

// Verification failure modes.
var (
	ErrTokenMissing = errors.New("no bearer token presented")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Identity is the authenticated caller, reconstructed strictly from a
// verified token payload. It is constructed only by TokenManager.Verify so a
// future design can add revocation by changing only the verifier.
type Identity struct {
	UserID int64
	Role   domain.RoleName
}

// TokenManager issues and verifies signed identity tokens. The signing secret
// is injected once at process start.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a manager around the process-wide signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the token payload: user id and role plus the standard
// issued-at/expiry claims.
type Claims struct {
	UserID int64           `json:"user_id"`
	Role   domain.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the user. Expiry is always exactly
// TokenTTL after issuance.
func (tm *TokenManager) Issue(userID int64, role domain.RoleName) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and returns the caller's Identity.
// Fails with ErrTokenMissing, ErrTokenExpired or ErrTokenInvalid. A payload
// carrying an unknown role is rejected, not defaulted.
func (tm *TokenManager) Verify(tokenStr string) (*Identity, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
