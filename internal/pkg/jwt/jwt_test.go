package jwt

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func newVerifier(t *testing.T, clk *fakeClock) *HS256 {
	t.Helper()

	h, err := NewHS256(Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "https://auth.example.com",
		TTL:    time.Hour,
		Clock:  clk,
	})
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}
	return h
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	_, err := NewHS256(Config{Secret: []byte("short"), Clock: &fakeClock{}})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	h := newVerifier(t, clk)

	// Act
	token, err := h.Generate("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := h.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	h := newVerifier(t, clk)
	token, err := h.Generate("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Act
	clk.now = clk.now.Add(2 * time.Hour)
	_, err = h.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	h := newVerifier(t, clk)
	other, err := NewHS256(Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		Issuer: "https://auth.example.com",
		TTL:    time.Hour,
		Clock:  clk,
	})
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}
	token, err := other.Generate("user-1", "jane@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Act
	_, err = h.Verify(token)

	// Assert
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthContextRoundTrip(t *testing.T) {
	ctx := t.Context()

	if got := GetAuth(ctx); got != nil {
		t.Fatalf("expected nil claims on empty context, got %+v", got)
	}

	clm := Claims{Email: "jane@example.com"}
	ctx = SetAuth(ctx, clm)

	got := GetAuth(ctx)
	if got == nil || got.Email != "jane@example.com" {
		t.Fatalf("claims = %+v", got)
	}
}
