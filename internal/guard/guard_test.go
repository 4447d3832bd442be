package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleankili/backend/internal/auth"
	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/storage"
)

type fixture struct {
	guard *Guard
	codec *auth.TokenCodec
	store *storage.InMemoryStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	store := storage.NewInMemoryStorage()
	return &fixture{
		guard: NewGuard(codec, store),
		codec: codec,
		store: store,
	}
}

func (f *fixture) addAdmin(t *testing.T, verified, super bool) (*models.Admin, string) {
	t.Helper()
	admin := &models.Admin{
		Email:        "admin@cleankili.org",
		Phone:        "+254700000000",
		PasswordHash: "irrelevant",
		IsVerified:   verified,
		IsSuperAdmin: super,
	}
	require.NoError(t, f.store.CreateAdmin(context.Background(), admin))
	token, err := f.codec.Issue(admin.ID, admin.Email)
	require.NoError(t, err)
	return admin, "Bearer " + token
}

func TestGuard_CurrentAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return a verified admin for a valid token", func(t *testing.T) {
		f := newFixture(t)
		admin, header := f.addAdmin(t, true, false)

		got, err := f.guard.CurrentAdmin(ctx, header)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)
	})

	t.Run("Should reject a missing header", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.guard.CurrentAdmin(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject a non-bearer header", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.guard.CurrentAdmin(ctx, "Basic dXNlcjpwYXNz")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject a tampered token", func(t *testing.T) {
		f := newFixture(t)
		_, header := f.addAdmin(t, true, false)
		_, err := f.guard.CurrentAdmin(ctx, header[:len(header)-2]+"xx")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		f := newFixture(t)
		expiredCodec, err := auth.NewTokenCodec("test-secret", "HS256", -time.Hour)
		require.NoError(t, err)
		admin, _ := f.addAdmin(t, true, false)
		token, err := expiredCodec.Issue(admin.ID, admin.Email)
		require.NoError(t, err)

		_, err = f.guard.CurrentAdmin(ctx, "Bearer "+token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject a token whose subject no longer exists", func(t *testing.T) {
		f := newFixture(t)
		token, err := f.codec.Issue("ghost-id", "")
		require.NoError(t, err)

		_, err = f.guard.CurrentAdmin(ctx, "Bearer "+token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject a token with no subject", func(t *testing.T) {
		f := newFixture(t)
		token, err := f.codec.Issue("", "")
		require.NoError(t, err)

		_, err = f.guard.CurrentAdmin(ctx, "Bearer "+token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should reject an unverified admin with a valid token", func(t *testing.T) {
		f := newFixture(t)
		_, header := f.addAdmin(t, false, false)

		_, err := f.guard.CurrentAdmin(ctx, header)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.NotErrorIs(t, err, ErrForbidden)
	})
}

func TestGuard_SuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid a verified regular admin", func(t *testing.T) {
		f := newFixture(t)
		_, header := f.addAdmin(t, true, false)

		admin, err := f.guard.CurrentAdmin(ctx, header)
		require.NoError(t, err)

		err = f.guard.SuperAdmin(admin)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Should pass a super admin through both stages", func(t *testing.T) {
		f := newFixture(t)
		_, header := f.addAdmin(t, true, true)

		admin, err := f.guard.CurrentAdmin(ctx, header)
		require.NoError(t, err)
		assert.NoError(t, f.guard.SuperAdmin(admin))
	})
}
