package demoserver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenUnknown indicates the refresh token is absent or expired.
var ErrRefreshTokenUnknown = errors.New("refresh token unknown")

// RefreshTokenStore persists one-shot refresh tokens. Consume removes the
// token so every refresh rotates the pair.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// memoryTokenStore is the default store when no redis address is set.
type memoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryTokenStore builds an in-process refresh token store.
func NewMemoryTokenStore() RefreshTokenStore {
	return &memoryTokenStore{entries: make(map[string]memoryEntry)}
}

func (m *memoryTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *memoryTokenStore) Consume(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[token]
	if !ok {
		return "", ErrRefreshTokenUnknown
	}
	delete(m.entries, token)
	if time.Now().After(entry.expiresAt) {
		return "", ErrRefreshTokenUnknown
	}
	return entry.userID, nil
}

const redisTokenPrefix = "demo:refresh:"

// redisTokenStore keeps refresh tokens in redis so restarts of the demo
// server do not drop live sessions.
type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore builds a redis-backed refresh token store.
func NewRedisTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisTokenStore{client: client}
}

func (r *redisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, redisTokenPrefix+token, userID, ttl).Err()
}

func (r *redisTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, redisTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrRefreshTokenUnknown
		}
		return "", err
	}
	return userID, nil
}
