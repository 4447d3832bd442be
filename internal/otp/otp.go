package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore persists one-time codes with a TTL, keyed by admin email.
type CodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

var ErrCodeNotFound = errors.New("otp code not found")

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(email string) string {
	return "otp:" + email
}

func (s *RedisStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, key(email), code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, key(email)).Result()
	if err == redis.Nil {
		return "", ErrCodeNotFound
	}
	return code, err
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}

type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]*memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, k)
		}
	}

	s.codes[email] = &memoryEntry{
		code:      code,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.codes[email]
	if !exists || time.Now().After(entry.expiresAt) {
		return "", ErrCodeNotFound
	}
	return entry.code, nil
}

func (s *MemoryStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// Service issues and checks one-time verification codes.
type Service struct {
	store CodeStore
	ttl   time.Duration
}

func NewService(store CodeStore, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

const codeDigits = 6

// Issue generates a fresh numeric code for email, replacing any
// outstanding one, and returns it for delivery.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, email, code, s.ttl); err != nil {
		return "", fmt.Errorf("store otp code: %w", err)
	}
	return code, nil
}

// Verify reports whether code matches the outstanding code for email. A
// matching code is consumed and cannot be used again.
func (s *Service) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.store.Delete(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
