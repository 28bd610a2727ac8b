package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const verifyPrefix = "verify:"

var ErrVerificationKeyNotFound = errors.New("verification key not found")

// VerificationRepo holds short-lived email verification keys: key = the uuid
// mailed to the account, value = the email being verified.
type VerificationRepo struct {
	client *goredis.Client
}

func NewVerificationRepo(client *goredis.Client) *VerificationRepo {
	return &VerificationRepo{client: client}
}

func (r *VerificationRepo) Put(ctx context.Context, key, email string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Set(ctx, verifyPrefix+key, email, ttl).Err(); err != nil {
		return fmt.Errorf("put verification key: %w", err)
	}
	return nil
}

func (r *VerificationRepo) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}

	email, err := r.client.Get(ctx, verifyPrefix+key).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", ErrVerificationKeyNotFound
		}
		return "", fmt.Errorf("get verification key: %w", err)
	}
	return email, nil
}

func (r *VerificationRepo) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Del(ctx, verifyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete verification key: %w", err)
	}
	return nil
}
