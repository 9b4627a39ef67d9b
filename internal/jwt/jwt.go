// Package jwt issues and verifies HS256 JSON Web Tokens.
//
// The signing secret comes from configuration (jwt.secret or
// RCLI_JWT_SECRET); there is no built-in default.
package jwt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mrz1836/rcli/internal/clock"
	"github.com/mrz1836/rcli/internal/errors"
)

// Claims is the subset of registered claims rcli reads and writes.
type Claims struct {
	Subject   string
	Audience  string
	Issuer    string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
	clock  clock.Clock
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(c clock.Clock) Option {
	return func(i *Issuer) {
		i.clock = c
	}
}

// NewIssuer returns an Issuer for secret. An empty secret is ErrJWTSecretMissing.
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, errors.ErrJWTSecretMissing
	}
	i := &Issuer{secret: []byte(secret), clock: clock.System{}}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Sign issues a token for c valid for ttl. IssuedAt, ExpiresAt and ID are
// filled in and returned alongside the token.
func (i *Issuer) Sign(c Claims, ttl time.Duration) (string, Claims, error) {
	if ttl <= 0 {
		return "", Claims{}, fmt.Errorf("%w: ttl must be positive, got %s", errors.ErrValueOutOfRange, ttl)
	}

	now := i.clock.Now().Truncate(time.Second)
	c.IssuedAt = now
	c.ExpiresAt = now.Add(ttl)
	c.ID = uuid.NewString()

	registered := gojwt.RegisteredClaims{
		Subject:   c.Subject,
		Issuer:    c.Issuer,
		ID:        c.ID,
		IssuedAt:  gojwt.NewNumericDate(c.IssuedAt),
		ExpiresAt: gojwt.NewNumericDate(c.ExpiresAt),
	}
	if c.Audience != "" {
		registered.Audience = gojwt.ClaimStrings{c.Audience}
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, registered).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("signing token: %w", err)
	}
	return token, c, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// The audience is read but not enforced.
func (i *Issuer) Verify(token string) (Claims, error) {
	var registered gojwt.RegisteredClaims
	_, err := gojwt.ParseWithClaims(strings.TrimSpace(token), &registered,
		func(*gojwt.Token) (any, error) { return i.secret, nil },
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(i.clock.Now),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, errors.Tag(errors.ErrTokenInvalid, err, "verifying token")
	}

	c := Claims{
		Subject: registered.Subject,
		Issuer:  registered.Issuer,
		ID:      registered.ID,
	}
	if len(registered.Audience) > 0 {
		c.Audience = registered.Audience[0]
	}
	if registered.IssuedAt != nil {
		c.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		c.ExpiresAt = registered.ExpiresAt.Time
	}
	return c, nil
}

var dayWeekPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)([dw])`) //nolint:gochecknoglobals // Compiled once

// ParseDuration parses a Go duration extended with d (24h) and w (7d)
// units, such as "14d", "2w" or "1d12h". The result must be positive.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errors.ErrInvalidDuration)
	}

	var convErr error
	expanded := dayWeekPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := dayWeekPattern.FindStringSubmatch(m)
		n, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			convErr = err
			return m
		}
		hours := n * 24
		if parts[2] == "w" {
			hours *= 7
		}
		return strconv.FormatFloat(hours, 'f', -1, 64) + "h"
	})
	if convErr != nil {
		return 0, fmt.Errorf("%w: %q: %w", errors.ErrInvalidDuration, s, convErr)
	}

	d, err := time.ParseDuration(expanded)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidDuration, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", errors.ErrInvalidDuration, s)
	}
	return d, nil
}
