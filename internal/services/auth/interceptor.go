package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Interceptor runs once per request and tries to attach a Principal to the
// request context. It never rejects a request: every failure path degrades to
// an anonymous pass-through and the next handler always runs. When a valid
// refresh credential backs an expired access credential, a fresh access
// cookie is written transparently; the refresh credential itself is never
// reissued here.
type Interceptor struct {
	codec        *Codec
	cookies      CookieCarrier
	store        SessionStore
	resolver     IdentityResolver
	accessTTL    time.Duration
	storeTimeout time.Duration
	log          *zap.Logger
}

func NewInterceptor(codec *Codec, store SessionStore, resolver IdentityResolver, accessTTL, storeTimeout time.Duration, log *zap.Logger) *Interceptor {
	if log == nil {
		log = zap.NewNop()
	}
	if storeTimeout <= 0 {
		storeTimeout = 2 * time.Second
	}

	return &Interceptor{
		codec:        codec,
		store:        store,
		resolver:     resolver,
		accessTTL:    accessTTL,
		storeTimeout: storeTimeout,
		log:          log,
	}
}

func (i *Interceptor) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principal, ok := i.authenticate(w, r); ok {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (i *Interceptor) authenticate(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	raw, ok := i.cookies.Read(r, AccessTokenCookie)
	if ok {
		claims, err := i.codec.Parse(raw)
		switch {
		case err == nil:
			principal, rerr := i.resolver.LoadPrincipal(r.Context(), claims.Subject)
			if rerr != nil {
				// A structurally valid credential whose account is gone
				// never warrants a rotation attempt.
				i.log.Debug("principal lookup failed for valid access token", zap.Error(rerr))
				return Principal{}, false
			}
			return principal, true
		case errors.Is(err, ErrTokenExpired):
			// expired: try the refresh path
		default:
			// A malformed access credential is handled exactly like an
			// absent one; the refresh path may still authenticate.
			i.log.Debug("malformed access token", zap.Error(err))
		}
	}

	return i.rotate(w, r)
}

func (i *Interceptor) rotate(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	refresh, ok := i.cookies.Read(r, RefreshTokenCookie)
	if !ok {
		return Principal{}, false
	}

	subject, err := i.codec.ExtractSubject(refresh)
	if err != nil {
		// A refresh credential we cannot verify is never used for rotation.
		return Principal{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), i.storeTimeout)
	defer cancel()

	stored, err := i.store.Get(ctx, refresh)
	if err != nil {
		// Absent key, store error and timeout all degrade the same way.
		if !errors.Is(err, ErrSessionMiss) {
			i.log.Debug("session store lookup failed", zap.Error(err))
		}
		return Principal{}, false
	}
	if stored != subject {
		// The store entry no longer matches what the credential itself
		// encodes; treat as a rejected rotation.
		i.log.Debug("refresh subject mismatch", zap.String("subject", subject))
		return Principal{}, false
	}

	principal, err := i.resolver.LoadPrincipal(r.Context(), subject)
	if err != nil {
		return Principal{}, false
	}

	access, err := i.codec.Generate(subject, i.accessTTL)
	if err != nil {
		i.log.Error("generate rotated access token", zap.Error(err))
		return Principal{}, false
	}

	i.cookies.Write(w, AccessTokenCookie, access, i.accessTTL)
	return principal, true
}
