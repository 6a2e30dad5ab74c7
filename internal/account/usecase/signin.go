package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
)

type SignInInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	UserID       string
	Email        string
}

// SignIn exchanges credentials for a provider-issued session.
func (s *Usecase) SignIn(ctx context.Context, in SignInInput) (*SignInOutput, error) {
	ctx, span := s.startSpan(ctx, "SignIn")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.idp.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		var perr *idp.Error
		if errors.As(err, &perr) {
			slog.WarnContext(ctx, "provider rejected sign in", "email", in.Email, "status", perr.Status)
			return nil, goerror.NewBusiness(perr.Message, goerror.CodeUnauthorized)
		}
		slog.ErrorContext(ctx, "failed to sign in at provider", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SignInOutput{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		TokenType:    sess.TokenType,
		ExpiresIn:    int64(sess.ExpiresIn / time.Second),
		UserID:       sess.User.ID,
		Email:        sess.User.Email,
	}, nil
}
