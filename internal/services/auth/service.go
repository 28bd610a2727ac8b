package auth

import (
	"context"
	"fmt"
	"time"
)

// Service issues the credential pair at login time. Password checking and
// account lookup belong to the accounts service; by the time Issue runs the
// subject has already been verified.
type Service struct {
	codec        *Codec
	store        SessionStore
	accessTTL    time.Duration
	refreshTTL   time.Duration
	storeTimeout time.Duration
}

func NewService(codec *Codec, store SessionStore, accessTTL, refreshTTL, storeTimeout time.Duration) *Service {
	if storeTimeout <= 0 {
		storeTimeout = 2 * time.Second
	}

	return &Service{
		codec:        codec,
		store:        store,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		storeTimeout: storeTimeout,
	}
}

// Issue mints an access and a refresh credential for the subject and records
// the refresh session. The session entry's TTL mirrors the refresh
// credential's own expiry. There is no transaction spanning the store write
// and the cookie write that follows in the handler; a crash in between leaves
// an orphaned entry that grants nothing and ages out via TTL.
func (s *Service) Issue(ctx context.Context, subject string) (TokenPair, error) {
	access, err := s.codec.Generate(subject, s.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.codec.Generate(subject, s.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	putCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Put(putCtx, refresh, subject, s.refreshTTL); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh session: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }
