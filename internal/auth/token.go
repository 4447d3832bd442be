package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cleankili/backend/internal/models"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenCodec issues and validates signed access tokens. The signing key,
// method and TTL are fixed at construction; there is no key rotation.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given admin. Email rides along as an extra
// claim; the subject is the admin ID.
func (c *TokenCodec) Issue(adminID, email string) (string, error) {
	now := c.now()
	claims := models.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Validate checks signature and expiry. Expired tokens fail with
// ErrTokenExpired; everything else (bad signature, malformed structure,
// algorithm mismatch) fails with ErrTokenInvalid.
func (c *TokenCodec) Validate(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithTimeFunc(c.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
