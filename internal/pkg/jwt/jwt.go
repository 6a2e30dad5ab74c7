// Package jwt verifies session tokens issued by the identity provider.
//
// The provider signs access tokens with a shared HS256 secret; this package
// never mints production tokens, it only validates them on protected
// endpoints and exposes the claims through the request context. Generate
// exists for tests that need a well-formed token.
package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSigningKeyTooShort is returned when the HS256 secret is under 32 bytes.
	ErrSigningKeyTooShort = errors.New("HS256 signing key must be at least 32 bytes (256 bits)")

	// ErrTokenExpired is returned when the token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT verifies provider-issued tokens and can mint tokens for tests.
type JWT interface {
	// Generate creates a signed token for the subject.
	Generate(subject, email string) (string, error)
	// Verify parses and validates the token and returns its claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type jwtContextKey struct{}

// Claims wraps the registered claims with the provider's payload. Subject is
// the account UUID assigned by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	// Email is the authenticated account email.
	Email string `json:"email"`
}

// GetAuth returns the claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}

// Config defines the inputs for building an HS256 verifier.
type Config struct {
	// Secret is the provider's HMAC signing key.
	Secret []byte
	// Issuer is the expected token issuer; empty skips the check.
	Issuer string
	// TTL is the lifetime applied to generated test tokens.
	TTL time.Duration
	// Clock provides the current time source.
	Clock clocker
}

// HS256 implements JWT with symmetric HMAC-SHA256 signing.
type HS256 struct {
	cfg Config
}

// NewHS256 validates the configuration and returns an HS256 instance.
func NewHS256(cfg Config) (*HS256, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrSigningKeyTooShort
	}

	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	return &HS256{cfg: cfg}, nil
}

// Generate creates a signed token for the subject.
func (h *HS256) Generate(subject, email string) (string, error) {
	now := h.cfg.Clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    h.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.TTL)),
		},
		Email: email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.cfg.Secret)
}

// Verify parses and validates the token and returns its claims.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(h.cfg.Clock.Now),
	}
	if h.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.cfg.Issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.cfg.Secret, nil
	}, opts...)

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Claims{}, ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
