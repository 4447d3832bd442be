package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks email/password credentials against the record store.
// It deliberately does not look at IsVerified; that belongs to the guard.
type Authenticator struct {
	store storage.Storage
}

func NewAuthenticator(store storage.Storage) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate returns the admin matching email whose stored hash verifies
// against password. An unknown email and a wrong password both come back as
// ErrInvalidCredentials; store failures are surfaced as-is.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := a.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("admin lookup: %w", err)
	}

	if !VerifyPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}
