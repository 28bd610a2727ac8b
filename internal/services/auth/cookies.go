package auth

import (
	"net/http"
	"time"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieCarrier moves credentials between HTTP messages and cookie headers.
// Secure and SameSite are left to deployment-level hardening and are not set
// here.
type CookieCarrier struct{}

// Read returns the named cookie's value. Name matching is case-sensitive and
// the first cookie with the name wins, matching client cookie semantics.
func (CookieCarrier) Read(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	return cookie.Value, true
}

func (CookieCarrier) Write(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// Clear deletes the cookie client-side. net/http writes Max-Age=0 on the
// wire for any negative MaxAge.
func (CookieCarrier) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
