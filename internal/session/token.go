// Package session identifies visitors. The visitor id scopes cart storage the
// way a browser origin scopes local storage.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	CookieName  = "lesoria_visitor"
	TokenMaxAge = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid visitor token")

// Issuer signs and verifies visitor tokens.
type Issuer struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer for secret. An empty secret gets a random,
// process-local key, so tokens do not survive a restart.
func NewIssuer(secret string) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
	}
	return &Issuer{secret: key, maxAge: TokenMaxAge, now: time.Now}, nil
}

// NewVisitorID returns a fresh ULID string.
func NewVisitorID() string {
	return ulid.Make().String()
}

func (i *Issuer) Issue(visitorID string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.maxAge)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse verifies tokenStr and returns the visitor id it carries.
func (i *Issuer) Parse(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := ulid.ParseStrict(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}
	return claims.Subject, nil
}
