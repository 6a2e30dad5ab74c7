// Package idp is the client for the managed identity provider.
//
// The provider owns password storage and session issuance; this service never
// hashes a password or mints a session itself. Account creation during phone
// verification goes through the admin surface with a service-role key, while
// sign-in, recovery, and password updates use the public auth surface.
package idp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable indicates the provider could not be reached or
// answered with a server-side failure.
var ErrProviderUnavailable = errors.New("idp: identity provider unavailable")

// Error is a provider-reported failure attributable to the request, such as
// a duplicate email on account creation or bad credentials on sign-in. The
// message is safe to surface to the caller.
type Error struct {
	// Status is the provider's HTTP status code.
	Status int
	// Message is the provider's human-readable error description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("idp: provider rejected request (%d): %s", e.Status, e.Message)
}

// Metadata is attached to an account at creation and mirrored into the
// provider-managed profile row.
type Metadata struct {
	FullName    string `json:"full_name,omitempty"`
	Role        string `json:"role,omitempty"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// User is the provider's account record.
type User struct {
	ID    string
	Email string
}

// Session is an authenticated session issued by the provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
	User         User
}

// CreateUserInput provisions an account through the admin surface.
type CreateUserInput struct {
	Email        string
	Password     string
	EmailConfirm bool
	Metadata     Metadata
}

// SignUpInput registers an account through the public surface. The provider
// sends its own confirmation email.
type SignUpInput struct {
	Email    string
	Password string
	Metadata Metadata
}

// Client is the operations surface this service consumes from the provider.
type Client interface {
	// CreateUser provisions an account via the admin API, optionally with the
	// email pre-confirmed.
	CreateUser(ctx context.Context, in CreateUserInput) (*User, error)
	// SignUp registers an account via the public API.
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	// SignIn exchanges email+password for a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// Recover asks the provider to send a reset-password email linking back
	// to redirectTo.
	Recover(ctx context.Context, email, redirectTo string) error
	// UpdatePassword changes the password of the account behind accessToken.
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}
