package usecase

import (
	"context"
	"log/slog"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
	"github.com/bodyclone/healthhub/internal/pkg/phone"
)

type ProfileUpdateInput struct {
	FullName    string  `validate:"required"`
	Age         *int32  `validate:"omitempty,gte=1,lte=120"`
	Gender      string  `validate:"omitempty,oneof=male female other"`
	PhoneNumber string  `validate:"omitempty,phone"`
	AvatarURL   *string `validate:"omitempty"`
}

type ProfileUpdateOutput struct {
	Message string
}

// ProfileUpdate saves the editable fields of the caller's profile.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*ProfileUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.PhoneNumber = phone.Normalize(in.PhoneNumber)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.UpdateProfile(ctx, entity.UpdateProfile{
		UserID:      clm.Subject,
		FullName:    in.FullName,
		Age:         in.Age,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		AvatarURL:   in.AvatarURL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to update profile", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileUpdateOutput{Message: "Profile updated successfully."}, nil
}
