package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", "HS256", ttl)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("Should accept HMAC algorithms", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			_, err := NewTokenCodec("secret", alg, time.Hour)
			assert.NoError(t, err)
		}
	})

	t.Run("Should reject unknown or non-HMAC algorithms", func(t *testing.T) {
		_, err := NewTokenCodec("secret", "none", time.Hour)
		assert.Error(t, err)
		_, err = NewTokenCodec("secret", "RS256", time.Hour)
		assert.Error(t, err)
	})
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, 24*time.Hour)

	token, err := codec.Issue("admin-123", "a@b.com")
	require.NoError(t, err)

	claims, err := codec.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokenCodec_Expiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, 24*time.Hour)
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue("admin-123", "")
	require.NoError(t, err)

	t.Run("Should validate one minute before expiry", func(t *testing.T) {
		codec.now = func() time.Time { return issued.Add(23*time.Hour + 59*time.Minute) }
		_, err := codec.Validate(token)
		assert.NoError(t, err)
	})

	t.Run("Should fail with ErrTokenExpired one minute after expiry", func(t *testing.T) {
		codec.now = func() time.Time { return issued.Add(24*time.Hour + time.Minute) }
		_, err := codec.Validate(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestTokenCodec_Invalid(t *testing.T) {
	codec := newTestCodec(t, 24*time.Hour)

	t.Run("Should fail with ErrTokenInvalid on a tampered signature", func(t *testing.T) {
		token, err := codec.Issue("admin-123", "")
		require.NoError(t, err)

		// Flip a byte in the signature segment.
		last := token[len(token)-1]
		flipped := byte('A')
		if last == flipped {
			flipped = 'B'
		}
		tampered := token[:len(token)-1] + string(flipped)

		_, err = codec.Validate(tampered)
		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Should fail with ErrTokenInvalid on tampered expired tokens", func(t *testing.T) {
		expired := newTestCodec(t, -time.Hour)
		token, err := expired.Issue("admin-123", "")
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		_, err = codec.Validate(tampered)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Should fail on malformed input", func(t *testing.T) {
		_, err := codec.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Should fail on a token signed with another key", func(t *testing.T) {
		other, err := NewTokenCodec("other-secret", "HS256", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue("admin-123", "")
		require.NoError(t, err)

		_, err = codec.Validate(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Should fail on an algorithm mismatch", func(t *testing.T) {
		other, err := NewTokenCodec("test-secret", "HS512", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue("admin-123", "")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(token, "ey"))

		_, err = codec.Validate(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
