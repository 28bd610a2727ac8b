package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeStore struct {
	entries map[string]string
	ttls    map[string]time.Duration
	err     error
	gets    int
}

func (s *fakeStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	if s.entries == nil {
		s.entries = map[string]string{}
		s.ttls = map[string]time.Duration{}
	}
	s.entries[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	s.gets++
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.entries[key]
	if !ok {
		return "", ErrSessionMiss
	}
	return value, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

type fakeResolver struct {
	principals map[string]Principal
}

func (r *fakeResolver) LoadPrincipal(_ context.Context, subject string) (Principal, error) {
	principal, ok := r.principals[subject]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return principal, nil
}

type interceptorFixture struct {
	codec       *Codec
	store       *fakeStore
	resolver    *fakeResolver
	interceptor *Interceptor
	clock       *time.Time
}

func newInterceptorFixture(t *testing.T) *interceptorFixture {
	t.Helper()

	now := time.Now()
	codec := NewCodec("test-secret")
	codec.now = func() time.Time { return now }

	store := &fakeStore{}
	resolver := &fakeResolver{principals: map[string]Principal{
		"a@x.com": {Subject: "a@x.com", Authorities: []string{"LEVEL_1"}},
	}}

	return &interceptorFixture{
		codec:       codec,
		store:       store,
		resolver:    resolver,
		interceptor: NewInterceptor(codec, store, resolver, 10*time.Second, time.Second, zap.NewNop()),
		clock:       &now,
	}
}

// run sends one request through the middleware and reports the principal the
// downstream handler observed plus the recorded response.
func (f *interceptorFixture) run(t *testing.T, cookies ...*http.Cookie) (Principal, bool, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()

	var principal Principal
	var authenticated bool
	forwarded := false

	f.interceptor.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		principal, authenticated = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)

	if !forwarded {
		t.Fatalf("request must always be forwarded")
	}

	return principal, authenticated, rr
}

func (f *interceptorFixture) mustToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	token, err := f.codec.Generate(subject, ttl)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestInterceptorValidAccess(t *testing.T) {
	f := newInterceptorFixture(t)
	access := f.mustToken(t, "a@x.com", 10*time.Second)

	principal, ok, rr := f.run(t, &http.Cookie{Name: AccessTokenCookie, Value: access})
	if !ok || principal.Subject != "a@x.com" {
		t.Fatalf("expected authenticated a@x.com, got %+v ok=%v", principal, ok)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("no cookies may be written for a fresh access token")
	}
	if f.store.gets != 0 {
		t.Fatalf("session store must not be consulted for a fresh access token")
	}
}

func TestInterceptorNoCredentials(t *testing.T) {
	f := newInterceptorFixture(t)

	_, ok, rr := f.run(t)
	if ok {
		t.Fatalf("request without cookies must stay anonymous")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("no cookies may be written for an anonymous pass")
	}
}

func TestInterceptorExpiredAccessValidRefresh(t *testing.T) {
	f := newInterceptorFixture(t)
	access := f.mustToken(t, "a@x.com", 10*time.Second)
	refresh := f.mustToken(t, "a@x.com", 48*time.Hour)
	f.store.entries = map[string]string{refresh: "a@x.com"}

	*f.clock = f.clock.Add(time.Minute)

	principal, ok, rr := f.run(t,
		&http.Cookie{Name: AccessTokenCookie, Value: access},
		&http.Cookie{Name: RefreshTokenCookie, Value: refresh},
	)
	if !ok || principal.Subject != "a@x.com" {
		t.Fatalf("expected rotation to authenticate a@x.com, got %+v ok=%v", principal, ok)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != AccessTokenCookie {
		t.Fatalf("expected exactly one fresh access cookie, got %+v", cookies)
	}
	claims, err := f.codec.Parse(cookies[0].Value)
	if err != nil {
		t.Fatalf("parse rotated access token: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("rotated token subject %q", claims.Subject)
	}
	if !claims.ExpiresAt.After(f.clock.UTC()) {
		t.Fatalf("rotated token must carry a fresh expiry")
	}
}

func TestInterceptorRefreshSubjectMismatch(t *testing.T) {
	f := newInterceptorFixture(t)
	refresh := f.mustToken(t, "a@x.com", 48*time.Hour)
	f.store.entries = map[string]string{refresh: "b@x.com"}

	_, ok, rr := f.run(t, &http.Cookie{Name: RefreshTokenCookie, Value: refresh})
	if ok {
		t.Fatalf("mismatched store subject must be rejected")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be written on a rejected rotation")
	}
}

func TestInterceptorSessionMiss(t *testing.T) {
	f := newInterceptorFixture(t)
	refresh := f.mustToken(t, "a@x.com", 48*time.Hour)

	_, ok, rr := f.run(t, &http.Cookie{Name: RefreshTokenCookie, Value: refresh})
	if ok {
		t.Fatalf("evicted session must stay anonymous")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be written on a session miss")
	}
}

func TestInterceptorStoreErrorFailsOpen(t *testing.T) {
	f := newInterceptorFixture(t)
	refresh := f.mustToken(t, "a@x.com", 48*time.Hour)
	f.store.err = errors.New("store unreachable")

	_, ok, _ := f.run(t, &http.Cookie{Name: RefreshTokenCookie, Value: refresh})
	if ok {
		t.Fatalf("store failure must degrade to anonymous, not authenticate")
	}
}

func TestInterceptorMalformedAccessFallsThroughToRefresh(t *testing.T) {
	f := newInterceptorFixture(t)
	refresh := f.mustToken(t, "a@x.com", 48*time.Hour)
	f.store.entries = map[string]string{refresh: "a@x.com"}

	principal, ok, _ := f.run(t,
		&http.Cookie{Name: AccessTokenCookie, Value: "garbage"},
		&http.Cookie{Name: RefreshTokenCookie, Value: refresh},
	)
	if !ok || principal.Subject != "a@x.com" {
		t.Fatalf("malformed access token should fall through to refresh handling")
	}
}

func TestInterceptorMalformedRefreshNeverRotates(t *testing.T) {
	f := newInterceptorFixture(t)

	_, ok, _ := f.run(t, &http.Cookie{Name: RefreshTokenCookie, Value: "garbage"})
	if ok {
		t.Fatalf("malformed refresh token must never be used for rotation")
	}
	if f.store.gets != 0 {
		t.Fatalf("store must not be consulted for a malformed refresh token")
	}
}

func TestInterceptorOrphanedAccessDoesNotRotate(t *testing.T) {
	f := newInterceptorFixture(t)
	access := f.mustToken(t, "gone@x.com", 10*time.Second)
	refresh := f.mustToken(t, "gone@x.com", 48*time.Hour)
	f.store.entries = map[string]string{refresh: "gone@x.com"}

	_, ok, _ := f.run(t,
		&http.Cookie{Name: AccessTokenCookie, Value: access},
		&http.Cookie{Name: RefreshTokenCookie, Value: refresh},
	)
	if ok {
		t.Fatalf("valid access token with missing account must stay anonymous")
	}
	if f.store.gets != 0 {
		t.Fatalf("orphaned but valid access token must not trigger rotation")
	}
}
