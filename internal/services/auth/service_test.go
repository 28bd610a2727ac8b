package auth

import (
	"context"
	"testing"
	"time"
)

func TestIssueMintsPairAndRecordsSession(t *testing.T) {
	codec := NewCodec("test-secret")
	store := &fakeStore{}
	svc := NewService(codec, store, 10*time.Second, 48*time.Hour, time.Second)

	pair, err := svc.Issue(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !codec.Validate(pair.AccessToken, "a@x.com") {
		t.Fatalf("access token does not validate for subject")
	}
	if !codec.Validate(pair.RefreshToken, "a@x.com") {
		t.Fatalf("refresh token does not validate for subject")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	subject, ok := store.entries[pair.RefreshToken]
	if !ok || subject != "a@x.com" {
		t.Fatalf("session record missing or wrong: %q ok=%v", subject, ok)
	}
	if store.ttls[pair.RefreshToken] != 48*time.Hour {
		t.Fatalf("session ttl must mirror the refresh ttl, got %s", store.ttls[pair.RefreshToken])
	}
}

func TestIssueAllowsParallelSessionsPerSubject(t *testing.T) {
	codec := NewCodec("test-secret")
	issued := time.Now()
	codec.now = func() time.Time {
		issued = issued.Add(time.Second)
		return issued
	}
	store := &fakeStore{}
	svc := NewService(codec, store, 10*time.Second, 48*time.Hour, time.Second)

	first, err := svc.Issue(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := svc.Issue(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if first.RefreshToken == second.RefreshToken {
		t.Fatalf("each login must mint an independent refresh credential")
	}
	if len(store.entries) != 2 {
		t.Fatalf("expected two live sessions, got %d", len(store.entries))
	}
}
