package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bodyclone/healthhub/internal/account/usecase"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for auth and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// SignUp registers a new account through the identity provider.
func (h *HTTPEndpoint) SignUp(r *router.Request) (any, error) {
	var req SignUpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SignUp(r.Context(), usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		return nil, err
	}

	return SignUpResponse{
		UserID:  resp.UserID,
		Message: resp.Message,
	}, nil
}

// SignIn exchanges credentials for a session.
func (h *HTTPEndpoint) SignIn(r *router.Request) (any, error) {
	var req SignInRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SignIn(r.Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return SignInResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		User: SignInUser{
			ID:    resp.UserID,
			Email: resp.Email,
		},
	}, nil
}

// PasswordForgot requests a reset-password email.
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{Message: resp.Message}, nil
}

// PasswordUpdate changes the caller's password.
func (h *HTTPEndpoint) PasswordUpdate(r *router.Request) (any, error) {
	var req PasswordUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordUpdate(r.Context(), usecase.PasswordUpdateInput{
		AccessToken: bearerToken(r),
		Password:    req.Password,
	})
	if err != nil {
		return nil, err
	}

	return PasswordUpdateResponse{Message: resp.Message}, nil
}

// Profile returns the caller's profile.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		UserID:      resp.UserID,
		Email:       resp.Email,
		FullName:    resp.FullName,
		Age:         resp.Age,
		Gender:      resp.Gender,
		PhoneNumber: resp.PhoneNumber,
		AvatarURL:   resp.AvatarURL,
		Role:        resp.Role,
	}, nil
}

// ProfileUpdate saves the caller's profile fields.
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName:    req.FullName,
		Age:         req.Age,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	return ProfileUpdateResponse{Message: resp.Message}, nil
}

// AvatarUpload stores a new profile picture from a multipart form.
func (h *HTTPEndpoint) AvatarUpload(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("avatar")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	resp, err := h.uc.AvatarUpload(ctx, usecase.AvatarUploadInput{
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
	if err != nil {
		return nil, err
	}

	return AvatarUploadResponse{
		AvatarURL: resp.AvatarURL,
		Message:   resp.Message,
	}, nil
}

// AvatarRemove deletes the caller's profile picture.
func (h *HTTPEndpoint) AvatarRemove(r *router.Request) (any, error) {
	resp, err := h.uc.AvatarRemove(r.Context())
	if err != nil {
		return nil, err
	}

	return AvatarRemoveResponse{Message: resp.Message}, nil
}

func bearerToken(r *router.Request) string {
	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}
	return ""
}
