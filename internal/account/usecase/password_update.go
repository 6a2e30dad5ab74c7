package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
)

type PasswordUpdateInput struct {
	// AccessToken is the caller's bearer token, forwarded to the provider.
	AccessToken string `validate:"required"`
	Password    string `validate:"required,password"`
}

type PasswordUpdateOutput struct {
	Message string
}

// PasswordUpdate changes the authenticated caller's password at the provider.
func (s *Usecase) PasswordUpdate(ctx context.Context, in PasswordUpdateInput) (*PasswordUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordUpdate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.idp.UpdatePassword(ctx, in.AccessToken, in.Password); err != nil {
		var perr *idp.Error
		if errors.As(err, &perr) {
			slog.WarnContext(ctx, "provider rejected password update", "user_id", clm.Subject, "status", perr.Status)
			return nil, goerror.NewInvalidInputMsg(perr.Message)
		}
		slog.ErrorContext(ctx, "failed to update password at provider", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordUpdateOutput{Message: "Password updated successfully."}, nil
}
