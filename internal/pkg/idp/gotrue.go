package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoTrueOptions configures the GoTrue-compatible REST client.
type GoTrueOptions struct {
	// BaseURL is the provider's auth endpoint, e.g. https://x.supabase.co/auth/v1.
	BaseURL string
	// AnonKey authenticates public-surface requests.
	AnonKey string
	// ServiceRoleKey authenticates admin-surface requests.
	ServiceRoleKey string
	// Timeout bounds each request.
	Timeout time.Duration
}

// GoTrue implements Client against a GoTrue-compatible identity provider.
type GoTrue struct {
	opts   GoTrueOptions
	client *http.Client
}

// NewGoTrue constructs a GoTrue client.
func NewGoTrue(opts GoTrueOptions) *GoTrue {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	return &GoTrue{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// CreateUser provisions an account via the admin API.
func (g *GoTrue) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	body := map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": in.EmailConfirm,
		"user_metadata": in.Metadata,
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := g.do(ctx, http.MethodPost, "/admin/users", g.opts.ServiceRoleKey, body, &out); err != nil {
		return nil, err
	}

	return &User{ID: out.ID, Email: out.Email}, nil
}

// SignUp registers an account via the public API.
func (g *GoTrue) SignUp(ctx context.Context, in SignUpInput) (*User, error) {
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data":     in.Metadata,
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		User  *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := g.do(ctx, http.MethodPost, "/signup", g.opts.AnonKey, body, &out); err != nil {
		return nil, err
	}

	// Depending on confirmation settings the provider nests the user record.
	if out.User != nil {
		return &User{ID: out.User.ID, Email: out.User.Email}, nil
	}

	return &User{ID: out.ID, Email: out.Email}, nil
}

// SignIn exchanges email+password for a session.
func (g *GoTrue) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
		User         struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := g.do(ctx, http.MethodPost, "/token?grant_type=password", g.opts.AnonKey, body, &out); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
		ExpiresIn:    time.Duration(out.ExpiresIn) * time.Second,
		User:         User{ID: out.User.ID, Email: out.User.Email},
	}, nil
}

// Recover asks the provider to send a reset-password email.
func (g *GoTrue) Recover(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	return g.do(ctx, http.MethodPost, path, g.opts.AnonKey, map[string]any{"email": email}, nil)
}

// UpdatePassword changes the password of the account behind accessToken.
func (g *GoTrue) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	return g.doWithBearer(ctx, http.MethodPut, "/user", accessToken, map[string]any{"password": newPassword}, nil)
}

func (g *GoTrue) do(ctx context.Context, method, path, apiKey string, body, out any) error {
	return g.request(ctx, method, path, apiKey, "Bearer "+apiKey, body, out)
}

func (g *GoTrue) doWithBearer(ctx context.Context, method, path, token string, body, out any) error {
	return g.request(ctx, method, path, g.opts.AnonKey, "Bearer "+token, body, out)
}

func (g *GoTrue) request(ctx context.Context, method, path, apiKey, authorization string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(g.opts.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", authorization)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{Status: resp.StatusCode, Message: providerMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}

	return nil
}

// providerMessage extracts a human-readable description from the provider's
// inconsistent error bodies.
func providerMessage(raw []byte) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}

	return "request rejected by identity provider"
}
