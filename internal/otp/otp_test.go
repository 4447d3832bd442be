package otp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestService_MemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), 10*time.Minute)

	t.Run("Should issue a six digit code and verify it once", func(t *testing.T) {
		code, err := svc.Issue(ctx, "jane@cleankili.org")
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)

		ok, err := svc.Verify(ctx, "jane@cleankili.org", code)
		require.NoError(t, err)
		assert.True(t, ok)

		// Consumed on success.
		ok, err = svc.Verify(ctx, "jane@cleankili.org", code)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should reject a wrong code without consuming the right one", func(t *testing.T) {
		code, err := svc.Issue(ctx, "john@cleankili.org")
		require.NoError(t, err)

		ok, err := svc.Verify(ctx, "john@cleankili.org", "000000x")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.Verify(ctx, "john@cleankili.org", code)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Should reject a code for an email that never got one", func(t *testing.T) {
		ok, err := svc.Verify(ctx, "nobody@cleankili.org", "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should replace an outstanding code on reissue", func(t *testing.T) {
		first, err := svc.Issue(ctx, "amina@cleankili.org")
		require.NoError(t, err)
		second, err := svc.Issue(ctx, "amina@cleankili.org")
		require.NoError(t, err)

		if first != second {
			ok, err := svc.Verify(ctx, "amina@cleankili.org", first)
			require.NoError(t, err)
			assert.False(t, ok)
		}
		ok, err := svc.Verify(ctx, "amina@cleankili.org", second)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "jane@cleankili.org", "123456", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "jane@cleankili.org")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestService_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()
	svc := NewService(NewRedisStore(client), 10*time.Minute)

	t.Run("Should round-trip a code through redis", func(t *testing.T) {
		code, err := svc.Issue(ctx, "jane@cleankili.org")
		require.NoError(t, err)

		ok, err := svc.Verify(ctx, "jane@cleankili.org", code)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Verify(ctx, "jane@cleankili.org", code)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should expire codes after the TTL", func(t *testing.T) {
		code, err := svc.Issue(ctx, "john@cleankili.org")
		require.NoError(t, err)

		mr.FastForward(11 * time.Minute)

		ok, err := svc.Verify(ctx, "john@cleankili.org", code)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
