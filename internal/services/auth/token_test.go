package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Generate("a@x.com", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issuance %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestParseDistinguishesExpiredFromMalformed(t *testing.T) {
	codec := NewCodec("test-secret")
	issued := time.Now()
	codec.now = func() time.Time { return issued }

	token, err := codec.Generate("a@x.com", 10*time.Second)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if codec.IsExpired(token) {
		t.Fatalf("token should not be expired immediately after issuance")
	}

	codec.now = func() time.Time { return issued.Add(11 * time.Second) }
	if _, err := codec.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !codec.IsExpired(token) {
		t.Fatalf("IsExpired should report true past the ttl")
	}

	// A tampered signature must never be reported as merely expired.
	tampered := token[:len(token)-2] + "xx"
	if _, err := codec.Parse(tampered); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for bad signature, got %v", err)
	}
	if codec.IsExpired(tampered) {
		t.Fatalf("a malformed token is not expired")
	}

	if _, err := codec.Parse("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for garbage, got %v", err)
	}
	if _, err := codec.Parse(""); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for empty input, got %v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewCodec("secret-one").Generate("a@x.com", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewCodec("secret-two").Parse(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed across secrets, got %v", err)
	}
}

func TestExtractSubjectFailsLikeParse(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Generate("b@x.com", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	subject, err := codec.ExtractSubject(token)
	if err != nil || subject != "b@x.com" {
		t.Fatalf("extract subject: got %q, %v", subject, err)
	}

	if _, err := codec.ExtractSubject("garbage"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	codec := NewCodec("test-secret")
	issued := time.Now()
	codec.now = func() time.Time { return issued }

	token, err := codec.Generate("a@x.com", 10*time.Second)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !codec.Validate(token, "a@x.com") {
		t.Fatalf("validate should accept matching unexpired token")
	}
	if codec.Validate(token, "b@x.com") {
		t.Fatalf("validate should reject subject mismatch")
	}

	codec.now = func() time.Time { return issued.Add(time.Minute) }
	if codec.Validate(token, "a@x.com") {
		t.Fatalf("validate should reject expired token")
	}
}

func TestTokenWireFormat(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Generate("a@x.com", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three dot-separated segments, got %d", len(parts))
	}
}
