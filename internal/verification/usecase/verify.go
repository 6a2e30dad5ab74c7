package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/phone"
	"github.com/bodyclone/healthhub/internal/verification/entity"
	"github.com/samber/lo"
)

type VerifyInput struct {
	Dest     string
	OTP      string
	UserData *VerifyUserData
}

// VerifyUserData is the optional signup payload accompanying a verification.
// It is complete when email, password, and full name are all present.
type VerifyUserData struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required"`
	Role     string `validate:"omitempty,oneof=patient doctor"`
	Age      *int32 `validate:"omitempty,gte=1,lte=120"`
	Gender   string `validate:"omitempty,oneof=male female other"`
}

func (u *VerifyUserData) complete() bool {
	return u != nil && u.Email != "" && u.Password != "" && u.FullName != ""
}

type VerifyOutput struct {
	Success     bool
	IsNewUser   bool
	UserCreated *bool
	Message     string
	Phone       string
}

// Verify consumes the challenge matching (dest, otp) and tells the caller how
// to proceed: log in with an existing account, sign in with the account just
// provisioned, or complete registration. A wrong code and an already-consumed
// code are indistinguishable on purpose.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	dest := phone.Normalize(in.Dest)
	if dest == "" || in.OTP == "" {
		return nil, goerror.NewInvalidInputMsg("Phone number and OTP are required")
	}

	ch, err := s.repoDB.GetChallengeByPhoneCode(ctx, dest, in.OTP)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "invalid verification code attempted", "dest", dest)
		return nil, goerror.NewInvalidInputMsg("Invalid OTP code")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up challenge", "dest", dest, "error", err)
		return nil, goerror.NewServer(err, "Failed to verify OTP")
	}

	if s.clock.Now().After(ch.ExpiresAt) {
		if delErr := s.repoDB.DeleteChallenge(ctx, ch.ID); delErr != nil {
			slog.ErrorContext(ctx, "failed to delete expired challenge", "dest", dest, "error", delErr)
		}
		return nil, goerror.NewInvalidInputMsg("OTP has expired. Please request a new one.")
	}

	// Consume before branching; the code must never verify twice.
	if err := s.repoDB.DeleteChallenge(ctx, ch.ID); err != nil {
		slog.ErrorContext(ctx, "failed to consume challenge", "dest", dest, "error", err)
		return nil, goerror.NewServer(err, "Failed to verify OTP")
	}

	_, err = s.repoDB.GetProfileUserIDByPhone(ctx, dest)
	if err == nil {
		return &VerifyOutput{
			Success:   true,
			IsNewUser: false,
			Message:   "Phone verified. Please use your email to complete login.",
			Phone:     dest,
		}, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to look up profile by phone", "dest", dest, "error", err)
		return nil, goerror.NewServer(err, "Failed to verify OTP")
	}

	if !in.UserData.complete() {
		return &VerifyOutput{
			Success:     true,
			IsNewUser:   true,
			UserCreated: lo.ToPtr(false),
			Message:     "Phone verified. Please complete your registration.",
			Phone:       dest,
		}, nil
	}

	if err := s.provision(ctx, dest, in.UserData); err != nil {
		return nil, err
	}

	return &VerifyOutput{
		Success:     true,
		IsNewUser:   true,
		UserCreated: lo.ToPtr(true),
		Message:     "Account created successfully. Please sign in with your email.",
		Phone:       dest,
	}, nil
}

func (s *Usecase) provision(ctx context.Context, dest string, data *VerifyUserData) error {
	if err := s.validator.Validate(data); err != nil {
		return goerror.NewInvalidInput(err)
	}

	role := data.Role
	if role == "" {
		role = "patient"
	}

	user, err := s.idp.CreateUser(ctx, idp.CreateUserInput{
		Email:        data.Email,
		Password:     data.Password,
		EmailConfirm: true,
		Metadata: idp.Metadata{
			FullName:    data.FullName,
			Role:        role,
			Age:         int(lo.FromPtr(data.Age)),
			Gender:      data.Gender,
			PhoneNumber: dest,
		},
	})
	if err != nil {
		var perr *idp.Error
		if errors.As(err, &perr) {
			slog.WarnContext(ctx, "provider rejected account creation", "dest", dest, "status", perr.Status)
			return goerror.NewInvalidInputMsg(perr.Message)
		}
		slog.ErrorContext(ctx, "failed to create account at provider", "dest", dest, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.CreateProfileWithRole(ctx, entity.NewProfile{
		UserID:      user.ID,
		FullName:    data.FullName,
		Role:        role,
		Age:         data.Age,
		Gender:      data.Gender,
		PhoneNumber: dest,
	}); err != nil {
		// The account already exists at the provider; do not fail the
		// verification over the profile row.
		slog.ErrorContext(ctx, "failed to create profile for new account", "user_id", user.ID, "error", err)
	}

	slog.InfoContext(ctx, "account provisioned from phone verification", "user_id", user.ID)
	return nil
}
