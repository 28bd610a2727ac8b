package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTokenMalformed covers structural damage and bad signatures.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenExpired means the signature verified but the expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrSessionMiss means the refresh key is absent from the session store,
	// expired, or the store could not answer within the caller's deadline.
	ErrSessionMiss = errors.New("session not found")
	// ErrPrincipalNotFound means no account exists for the subject.
	ErrPrincipalNotFound = errors.New("principal not found")
)

// Principal is the resolved identity attached to an authenticated request.
// It is read-only here; the account itself is owned by the account store.
type Principal struct {
	Subject     string
	Authorities []string
}

func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// SessionStore is the key-value store binding a raw refresh credential to the
// subject it was issued for. Put overwrites and resets the TTL; Get misses on
// absent or expired keys; Delete is idempotent. A subject may hold any number
// of live sessions, one per login.
type SessionStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// IdentityResolver turns a subject into a full Principal. It fails with
// ErrPrincipalNotFound when the underlying account is gone.
type IdentityResolver interface {
	LoadPrincipal(ctx context.Context, subject string) (Principal, error)
}

// TokenPair is what a successful login hands back to the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
