package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/kingsubin/soob/internal/services/auth"
)

type staticStore struct {
	entries map[string]string
}

func (s *staticStore) Put(_ context.Context, key, value string, _ time.Duration) error {
	s.entries[key] = value
	return nil
}

func (s *staticStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.entries[key]
	if !ok {
		return "", authsvc.ErrSessionMiss
	}
	return value, nil
}

func (s *staticStore) Delete(_ context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

type staticResolver struct{}

func (staticResolver) LoadPrincipal(_ context.Context, subject string) (authsvc.Principal, error) {
	return authsvc.Principal{Subject: subject, Authorities: []string{"LEVEL_1"}}, nil
}

func newGatedRouter(t *testing.T) (*chi.Mux, *authsvc.Codec) {
	t.Helper()

	codec := authsvc.NewCodec("middleware-test-secret")
	store := &staticStore{entries: make(map[string]string)}
	interceptor := authsvc.NewInterceptor(codec, store, staticResolver{}, 10*time.Second, time.Second, nil)

	r := chi.NewRouter()
	r.Use(interceptor.Middleware())
	r.Get("/open", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(RequirePrincipal()).Get("/gated", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(RequirePrincipal(), RequireAuthority("ADMIN")).Get("/admin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r, codec
}

func TestAnonymousPassesOpenRoutes(t *testing.T) {
	r, _ := newGatedRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAnonymousBlockedOnGatedRoutes(t *testing.T) {
	r, _ := newGatedRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gated", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestValidAccessCookiePassesGate(t *testing.T) {
	r, codec := newGatedRouter(t)

	access, err := codec.Generate("kim@soob.community", 10*time.Second)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: authsvc.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthorityGateRejectsLowerRole(t *testing.T) {
	r, codec := newGatedRouter(t)

	access, err := codec.Generate("kim@soob.community", 10*time.Second)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: authsvc.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestTamperedCookieDegradesToAnonymous(t *testing.T) {
	r, _ := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: authsvc.AccessTokenCookie, Value: "not.a.token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
