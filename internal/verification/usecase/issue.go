package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/phone"
	"github.com/bodyclone/healthhub/internal/verification/entity"
)

type IssueInput struct {
	Dest string
}

type IssueOutput struct {
	Message string
}

// Issue generates a fresh 6-digit code for the destination, replacing any
// code issued earlier, and dispatches it over SMS. A failed dispatch rolls
// the stored code back so the destination is not left with a code it never
// received.
func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	dest := phone.Normalize(in.Dest)
	if dest == "" {
		return nil, goerror.NewInvalidInputMsg("Phone number is required")
	}
	if !phone.Valid(dest) {
		slog.WarnContext(ctx, "invalid phone number format", "dest", dest)
		return nil, goerror.NewInvalidInputMsg("Invalid phone number format")
	}

	cooldown := s.cfg.GetSecond("modules.verification.resend_cooldown_seconds")
	ok, err := s.throttle.Acquire(ctx, dest, cooldown)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire resend throttle", "dest", dest, "error", err)
		return nil, goerror.NewServer(err, "Failed to generate OTP")
	}
	if !ok {
		return nil, goerror.NewBusiness("Please wait before requesting a new code", goerror.CodeTooManyRequest)
	}

	code, err := generateCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "error", err)
		s.releaseSlot(ctx, dest)
		return nil, goerror.NewServer(err, "Failed to generate OTP")
	}

	ttl := s.cfg.GetMinute("modules.verification.code_ttl_minutes")

	// Replace any code issued earlier for this destination.
	if err := s.repoDB.DeleteChallengesByPhone(ctx, dest); err != nil {
		slog.ErrorContext(ctx, "failed to delete existing challenges", "dest", dest, "error", err)
		s.releaseSlot(ctx, dest)
		return nil, goerror.NewServer(err, "Failed to generate OTP")
	}

	if err := s.repoDB.CreateChallenge(ctx, entity.Challenge{
		ID:          s.uid.Generate(),
		PhoneNumber: dest,
		Code:        code,
		ExpiresAt:   s.clock.Now().Add(ttl),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store challenge", "dest", dest, "error", err)
		s.releaseSlot(ctx, dest)
		return nil, goerror.NewServer(err, "Failed to generate OTP")
	}

	body := fmt.Sprintf("Your BodyClone verification code is: %s. This code expires in %d minutes.",
		code, int(ttl/time.Minute))

	sid, err := s.sms.Send(ctx, dest, body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to dispatch verification sms", "dest", dest, "error", err)

		// The destination never received the code; roll it back.
		if delErr := s.repoDB.DeleteChallengesByPhone(ctx, dest); delErr != nil {
			slog.ErrorContext(ctx, "failed to roll back challenge after sms failure", "dest", dest, "error", delErr)
		}
		s.releaseSlot(ctx, dest)

		return nil, goerror.NewServer(err, "Failed to send SMS. Please check your phone number.")
	}

	slog.InfoContext(ctx, "verification sms dispatched", "dest", dest, "sid", sid)

	return &IssueOutput{Message: "OTP sent successfully"}, nil
}

// releaseSlot frees the resend throttle so a failed issue can be retried
// without waiting out the cooldown.
func (s *Usecase) releaseSlot(ctx context.Context, dest string) {
	if err := s.throttle.Release(ctx, dest); err != nil {
		slog.ErrorContext(ctx, "failed to release resend throttle", "dest", dest, "error", err)
	}
}

// generateCode returns a uniform random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
