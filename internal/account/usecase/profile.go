package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
)

type ProfileOutput struct {
	UserID      string
	Email       string
	FullName    string
	Age         *int32
	Gender      string
	PhoneNumber string
	AvatarURL   string
	Role        string
}

// Profile returns the authenticated caller's profile.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	profile, err := s.repoDB.GetProfileByUserID(ctx, clm.Subject)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "profile not found", "user_id", clm.Subject)
		return nil, goerror.NewBusiness("Profile not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get profile", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		UserID:      profile.UserID,
		Email:       clm.Email,
		FullName:    profile.FullName,
		Age:         profile.Age,
		Gender:      profile.Gender,
		PhoneNumber: profile.PhoneNumber,
		AvatarURL:   profile.AvatarURL,
		Role:        profile.Role,
	}, nil
}
