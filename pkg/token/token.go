// Package token mints and verifies the signed, expiring access tokens handed out at login.
// Verification is self-contained: it needs only the secret, never a store.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long a freshly minted token stays valid.
const DefaultTTL = time.Hour

var (
	// ErrInvalidToken is returned for any token that must not authorize a request
	ErrInvalidToken = errors.New("invalid access token")

	// ErrTokenExpired is an ErrInvalidToken whose only fault is its age
	ErrTokenExpired = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrEmptySecret is returned by NewIssuer when no signing secret is configured
	ErrEmptySecret = errors.New("token secret must not be empty")
)

// Grant is a minted token and the instant it stops being valid.
type Grant struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims is what Verify recovers from a token.
type Claims struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens with one process wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Issuer
type Option func(*Issuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer returns an Issuer. A ttl <= 0 means DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration, options ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	issuer := &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, option := range options {
		option(issuer)
	}
	return issuer, nil
}

// TTL is the validity window of minted tokens
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a token for username valid from now until now+TTL.
func (i *Issuer) Issue(username string) (Grant, error) {
	if username == "" {
		return Grant{}, errors.New("cannot issue a token without a username")
	}

	// NumericDate has second precision, so truncate before computing expiry.
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Grant{}, fmt.Errorf("signing access token: %w", err)
	}

	return Grant{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
// Every failure wraps ErrInvalidToken; an expired token wraps ErrTokenExpired.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	verified := Claims{
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return verified, nil
}
