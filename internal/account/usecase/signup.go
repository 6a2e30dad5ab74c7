package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/samber/lo"
)

type SignUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required"`
	Role     string `validate:"omitempty,oneof=patient doctor"`
	Age      *int32 `validate:"omitempty,gte=1,lte=120"`
	Gender   string `validate:"omitempty,oneof=male female other"`
}

type SignUpOutput struct {
	UserID  string
	Message string
}

// SignUp registers an account at the identity provider and provisions its
// profile. The provider sends the confirmation email itself.
func (s *Usecase) SignUp(ctx context.Context, in SignUpInput) (*SignUpOutput, error) {
	ctx, span := s.startSpan(ctx, "SignUp")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := in.Role
	if role == "" {
		role = "patient"
	}

	user, err := s.idp.SignUp(ctx, idp.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		Metadata: idp.Metadata{
			FullName: in.FullName,
			Role:     role,
			Age:      int(lo.FromPtr(in.Age)),
			Gender:   in.Gender,
		},
	})
	if err != nil {
		var perr *idp.Error
		if errors.As(err, &perr) {
			slog.WarnContext(ctx, "provider rejected signup", "email", in.Email, "status", perr.Status)
			return nil, goerror.NewInvalidInputMsg(perr.Message)
		}
		slog.ErrorContext(ctx, "failed to sign up at provider", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateProfileWithRole(ctx, entity.NewProfile{
		UserID:   user.ID,
		FullName: in.FullName,
		Role:     role,
		Age:      in.Age,
		Gender:   in.Gender,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to create profile at signup", "user_id", user.ID, "error", err)
	}

	slog.InfoContext(ctx, "account signed up", "user_id", user.ID)

	return &SignUpOutput{
		UserID:  user.ID,
		Message: "Account created successfully. Please check your email to confirm your address.",
	}, nil
}
