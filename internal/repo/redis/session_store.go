package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/kingsubin/soob/internal/services/auth"
)

const refreshPrefix = "refresh:"

// SessionStore keeps refresh-credential sessions in Redis: key = the raw
// refresh credential, value = the subject it was issued for, expiry handled
// server-side by the key TTL. Entries are never revoked on logout; they age
// out with the credential they back.
type SessionStore struct {
	client *goredis.Client
}

func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
		return fmt.Errorf("session key and value are required")
	}
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	if err := s.client.Set(ctx, refreshSessionKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("put refresh session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}

	value, err := s.client.Get(ctx, refreshSessionKey(key)).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", authsvc.ErrSessionMiss
		}
		return "", fmt.Errorf("get refresh session: %w", err)
	}
	return value, nil
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := s.client.Del(ctx, refreshSessionKey(key)).Err(); err != nil {
		return fmt.Errorf("delete refresh session: %w", err)
	}
	return nil
}

func refreshSessionKey(token string) string {
	return refreshPrefix + token
}
