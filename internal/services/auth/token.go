package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried inside a signed credential. Immutable once
// issued; expiry is re-checked on every Parse, never cached.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec creates and verifies the signed access/refresh credentials. Access
// and refresh tokens share the wire format and secret and differ only in the
// TTL they are generated with and the cookie that carries them.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (c *Codec) Generate(subject string, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("jwt secret is empty")
	}
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("token subject is empty")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}

	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiry. It fails with ErrTokenExpired only
// when the signature checks out and the expiry has passed; every other
// failure, bad signature included, is ErrTokenMalformed. Callers branch on
// the two sentinels instead of catching exceptions.
func (c *Codec) Parse(raw string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrTokenMalformed
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	if token == nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrTokenMalformed
	}

	out := Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// IsExpired reports whether the credential is valid apart from having passed
// its expiry. A malformed credential is not expired; it is a distinct failure.
func (c *Codec) IsExpired(raw string) bool {
	_, err := c.Parse(raw)
	return errors.Is(err, ErrTokenExpired)
}

// ExtractSubject reads Claims.Subject and fails exactly as Parse does.
func (c *Codec) ExtractSubject(raw string) (string, error) {
	claims, err := c.Parse(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate reports whether the credential parses, is unexpired and carries
// the expected subject.
func (c *Codec) Validate(raw, expectedSubject string) bool {
	claims, err := c.Parse(raw)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
