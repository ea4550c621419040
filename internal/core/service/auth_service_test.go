package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

func seedEmployee(t *testing.T, repo *stubEmployeeRepo, username, password, role string) *domain.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return repo.seed(domain.Employee{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubEmployeeRepo()
	emp := seedEmployee(t, repo, "carol", "s3cret", domain.RoleAdministrator)
	svc := NewAuthService(repo, "secret", time.Hour)

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty string")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdministrator {
		t.Errorf("expected role %s, got %v", domain.RoleAdministrator, claims["role"])
	}
	if claims["sub"] != "1" {
		t.Errorf("expected sub %d, got %v", emp.ID, claims["sub"])
	}
	if claims["username"] != "carol" {
		t.Errorf("expected username carol, got %v", claims["username"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Errorf("token missing expiry")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "dave", "goodpass", domain.RoleTester)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown usernames must produce the same error as wrong passwords.
func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "dave", "goodpass", domain.RoleTester)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, unknownErr := svc.Login(context.Background(), "ghost", "whatever")
	_, wrongErr := svc.Login(context.Background(), "dave", "badpass")
	if unknownErr != domain.ErrInvalidCredentials || wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical generic errors, got %v and %v", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubEmployeeRepo(), "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "erin", "pw", domain.RoleProgrammer)
	svc := NewAuthService(repo, "secret", 0) // <=0 falls back to 7 days

	token, err := svc.Login(context.Background(), "erin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}

	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	if got := time.Duration(exp-iat) * time.Second; got != defaultTokenTTL {
		t.Errorf("expected default TTL %v, got %v", defaultTokenTTL, got)
	}
}
