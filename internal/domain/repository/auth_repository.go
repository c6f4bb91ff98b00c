package repository

import "context"

// AuthRepository exchanges credentials for a bearer token. Token refresh and
// account management are the backend's concern, not this client's.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (string, error)
}
