package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

const identityKey = "auth_identity"

// Middleware validates bearer tokens and attaches the caller's Identity.
// The identity comes from the token payload alone; the user record is not
// re-fetched per request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	identity, err := m.tokens.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenMissing):
			return apperrors.NewUnauthenticated("no token provided")
		case errors.Is(err, ErrTokenExpired):
			return apperrors.NewUnauthenticated("token expired")
		default:
			return apperrors.NewUnauthenticated("invalid token")
		}
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

// DecisionError maps a deny decision to the matching domain error.
func DecisionError(d Decision) error {
	switch d.Reason {
	case DenyUnauthenticated:
		return apperrors.NewUnauthenticated("authentication required")
	case DenyNotOwner:
		return apperrors.NewNotOwner()
	default:
		return apperrors.NewInsufficientRole()
	}
}
