package dto

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces account-creation invariants. All failing rules are
// reported together.
func (r RegisterRequest) Validate() error {
	var messages []string
	if strings.TrimSpace(r.Name) == "" {
		messages = append(messages, "name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		messages = append(messages, "valid email is required")
	}
	if len(r.Password) < 6 {
		messages = append(messages, "password must be at least 6 characters")
	}
	if len(messages) > 0 {
		return apperrors.NewValidationError("invalid registration input", map[string]any{"errors": messages})
	}
	return nil
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload shape.
func (r LoginRequest) Validate() error {
	var messages []string
	if !emailPattern.MatchString(r.Email) {
		messages = append(messages, "valid email is required")
	}
	if r.Password == "" {
		messages = append(messages, "password is required")
	}
	if len(messages) > 0 {
		return apperrors.NewValidationError("invalid login input", map[string]any{"errors": messages})
	}
	return nil
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
