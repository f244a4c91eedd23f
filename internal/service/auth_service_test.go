package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
}

func newTestAuthService(roles ...domain.RoleName) (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:          users,
		RoleRepo:          newFakeRoleRepo(roles...),
		PasswordResetRepo: newFakeResetRepo(),
	})
	return svc, users
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleUser, domain.RoleAdmin)

	user, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected a user id")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("Role = %q, want USER", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newTestAuthService(domain.RoleUser)

	if _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err == nil {
		t.Fatal("second registration with same email must fail")
	}
	if code := domainCode(t, err); code != "DUPLICATE_EMAIL" {
		t.Errorf("code = %q, want DUPLICATE_EMAIL", code)
	}
	if len(users.users) != 1 {
		t.Errorf("expected exactly one stored user, got %d", len(users.users))
	}
}

func TestRegister_MissingDefaultRole(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleAdmin) // no USER role configured

	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err == nil {
		t.Fatal("registration must fail without a USER role")
	}
	if code := domainCode(t, err); code != "CONFIGURATION_ERROR" {
		t.Errorf("code = %q, want CONFIGURATION_ERROR", code)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleUser)

	registered, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, exp, err := svc.Login(context.Background(), "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if exp.IsZero() {
		t.Fatal("expected an expiry")
	}

	identity, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != registered.ID {
		t.Errorf("UserID = %d, want %d", identity.UserID, registered.ID)
	}
	if identity.Role != domain.RoleUser {
		t.Errorf("Role = %q, want USER", identity.Role)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleUser)
	if _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "ann@x.com", password: "wrong"},
		{name: "unknown email", email: "bob@x.com", password: "secret1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if err == nil {
				t.Fatal("login must fail")
			}
			if code := domainCode(t, err); code != "INVALID_CREDENTIALS" {
				t.Errorf("code = %q, want INVALID_CREDENTIALS", code)
			}
		})
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleUser)
	if _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	reset, err := svc.RequestPasswordReset(context.Background(), "ann@x.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if reset.Token == "" {
		t.Fatal("expected a reset token")
	}

	if err := svc.ConfirmPasswordReset(context.Background(), reset.Token, "newsecret"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ann@x.com", "newsecret"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ann@x.com", "secret1"); err == nil {
		t.Error("old password must no longer work")
	}

	// Tokens are single use.
	if err := svc.ConfirmPasswordReset(context.Background(), reset.Token, "thirdsecret"); err == nil {
		t.Error("reusing a reset token must fail")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAuthService(domain.RoleUser)
	user, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret"); err == nil {
		t.Error("change with wrong current password must fail")
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ann@x.com", "newsecret"); err != nil {
		t.Errorf("login with changed password: %v", err)
	}
}
