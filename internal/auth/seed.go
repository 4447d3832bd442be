package auth

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/storage"
)

// SeedFirstSuperAdmin creates the initial verified super admin from
// SEED_ADMIN_* configuration when the admins table is empty. Without it a
// fresh deployment has no account that can pass the super-admin guard to
// invite others. A no-op when the seed credentials are unset or an admin
// already exists.
func SeedFirstSuperAdmin(ctx context.Context, store storage.Storage, logger *logrus.Logger, email, password, phone string) error {
	if email == "" || password == "" {
		return nil
	}

	admins, err := store.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("seed: list admins: %w", err)
	}
	if len(admins) > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		IsVerified:   true,
		IsSuperAdmin: true,
	}
	if err := store.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}

	logger.WithField("email", email).Info("seed: created first super admin")
	return nil
}
