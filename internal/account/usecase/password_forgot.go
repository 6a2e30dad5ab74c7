package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	Message string
}

// PasswordForgot asks the provider to send a reset-password email. The
// response never reveals whether the address is registered.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	redirectTo := s.cfg.GetString("modules.account.password_reset_redirect_url")
	if err := s.idp.Recover(ctx, in.Email, redirectTo); err != nil {
		slog.WarnContext(ctx, "failed to request password recovery", "email", in.Email, "error", err)
	}

	return &PasswordForgotOutput{
		Message: "If an account exists for that email, a reset link has been sent.",
	}, nil
}
