package inbound

import (
	"context"

	"github.com/bodyclone/healthhub/internal/account/usecase"
	"github.com/bodyclone/healthhub/internal/pkg/router"
)

type uc interface {
	SignUp(ctx context.Context, in usecase.SignUpInput) (*usecase.SignUpOutput, error)
	SignIn(ctx context.Context, in usecase.SignInInput) (*usecase.SignInOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	PasswordUpdate(ctx context.Context, in usecase.PasswordUpdateInput) (*usecase.PasswordUpdateOutput, error)

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*usecase.ProfileUpdateOutput, error)

	AvatarUpload(ctx context.Context, in usecase.AvatarUploadInput) (*usecase.AvatarUploadOutput, error)
	AvatarRemove(ctx context.Context) (*usecase.AvatarRemoveOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Auth
	r.POST("/api/v1/auth/signup", end.SignUp)
	r.POST("/api/v1/auth/signin", end.SignIn)
	r.POST("/api/v1/auth/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/auth/password/update", end.PasswordUpdate) // need authenticated

	// Profile (need authenticated)
	r.GET("/api/v1/profile", end.Profile)
	r.PUT("/api/v1/profile", end.ProfileUpdate)
	r.PUT("/api/v1/profile/avatar", end.AvatarUpload)
	r.DELETE("/api/v1/profile/avatar", end.AvatarRemove)
}
