package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoStoredHash means the account has no stored credential to compare with.
var ErrNoStoredHash = errors.New("no stored password hash")

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. bcrypt keeps
// the comparison constant-time. A missing stored hash never verifies.
func ComparePassword(hashed, plain string) error {
	if hashed == "" {
		return ErrNoStoredHash
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
