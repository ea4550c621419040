package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// AuthService implements login and token issuance.
type AuthService struct {
	repo      ports.EmployeeRepository
	jwtSecret string
	tokenTTL  time.Duration
}

const defaultTokenTTL = 7 * 24 * time.Hour

func NewAuthService(repo ports.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies the credentials against the stored bcrypt digest and issues
// a token embedding (id, username, role). The role claim is a snapshot: role
// changes take effect on the next login, not on outstanding tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	employee, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			// Burn a comparison so unknown usernames cost the same as wrong
			// passwords, then fail with the same generic error.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(employee)
}

// dummyHash is a valid bcrypt digest of an unguessable value, used only to
// equalize timing on unknown-username logins.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("devtrack-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

func (s *AuthService) generateToken(e *domain.Employee) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(e.ID, 10),
		"username": e.Username,
		"role":     e.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
