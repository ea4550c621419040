package ports

import "context"

// AuthService authenticates employees and issues bearer tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed bearer token.
	// Unknown usernames and wrong passwords both surface as
	// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
	Login(ctx context.Context, username, password string) (string, error)
}
