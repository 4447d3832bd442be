// Package guard resolves bearer tokens to admin identities and enforces
// account and role requirements. The two stages compose: CurrentAdmin
// establishes who is calling (401 territory), SuperAdmin decides whether
// that identity is privileged enough (403 territory).
package guard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cleankili/backend/internal/auth"
	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/storage"
)

var (
	// ErrUnauthorized means no valid, verified identity could be
	// established from the presented token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the identity is valid but lacks the required
	// privilege.
	ErrForbidden = errors.New("forbidden")
)

type Guard struct {
	codec *auth.TokenCodec
	store storage.Storage
}

func NewGuard(codec *auth.TokenCodec, store storage.Storage) *Guard {
	return &Guard{codec: codec, store: store}
}

// CurrentAdmin resolves an Authorization header value to a verified admin.
// Every failure short of a store outage is reported as ErrUnauthorized,
// wrapping the underlying cause for observability.
func (g *Guard) CurrentAdmin(ctx context.Context, authorizationHeader string) (*models.Admin, error) {
	token, err := extractBearerToken(authorizationHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, err := g.codec.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	admin, err := g.store.GetAdminByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return nil, fmt.Errorf("%w: admin not found", ErrUnauthorized)
		}
		return nil, fmt.Errorf("admin lookup: %w", err)
	}

	if !admin.IsVerified {
		return nil, fmt.Errorf("%w: admin account not verified", ErrUnauthorized)
	}

	return admin, nil
}

// SuperAdmin is the second guard stage; it assumes admin came from
// CurrentAdmin.
func (g *Guard) SuperAdmin(admin *models.Admin) error {
	if !admin.IsSuperAdmin {
		return fmt.Errorf("%w: super admin privileges required", ErrForbidden)
	}
	return nil
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
