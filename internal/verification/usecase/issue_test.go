package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
)

func TestIssueEmptyPhone(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.Issue(context.Background(), IssueInput{Dest: "   "})

	// Assert
	if out != nil {
		t.Fatalf("expected nil output, got %+v", out)
	}
	assertGoError(t, err, "Phone number is required", goerror.CodeInvalidInput)
}

func TestIssueInvalidPhone(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.Issue(context.Background(), IssueInput{Dest: "notaphone"})

	// Assert
	assertGoError(t, err, "Invalid phone number format", goerror.CodeInvalidInput)
	if len(f.repo.createCalls) != 0 {
		t.Errorf("expected no challenge stored, got %d", len(f.repo.createCalls))
	}
	if len(f.throttle.acquireCalls) != 0 {
		t.Errorf("expected no throttle acquire, got %d", len(f.throttle.acquireCalls))
	}
	if len(f.sms.calls) != 0 {
		t.Errorf("expected no sms sent, got %d", len(f.sms.calls))
	}
}

func TestIssueThrottled(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.throttle.denied = true

	// Act
	_, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"})

	// Assert
	assertGoError(t, err, "Please wait before requesting a new code", goerror.CodeTooManyRequest)
	if len(f.repo.createCalls) != 0 {
		t.Errorf("expected no challenge stored, got %d", len(f.repo.createCalls))
	}
}

func TestIssueSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.Issue(context.Background(), IssueInput{Dest: " +1 555 000 1234 "})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "OTP sent successfully" {
		t.Errorf("message = %q", out.Message)
	}

	if len(f.repo.deleteByPhoneCalls) != 1 || f.repo.deleteByPhoneCalls[0] != "+15550001234" {
		t.Errorf("expected prior challenges deleted for +15550001234, got %v", f.repo.deleteByPhoneCalls)
	}

	if len(f.repo.createCalls) != 1 {
		t.Fatalf("expected one challenge stored, got %d", len(f.repo.createCalls))
	}
	ch := f.repo.createCalls[0]
	if ch.PhoneNumber != "+15550001234" {
		t.Errorf("challenge phone = %q", ch.PhoneNumber)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(ch.Code) {
		t.Errorf("challenge code = %q, want 6 digits", ch.Code)
	}
	if want := f.clock.now.Add(5 * time.Minute); !ch.ExpiresAt.Equal(want) {
		t.Errorf("challenge expiry = %v, want %v", ch.ExpiresAt, want)
	}

	if len(f.sms.calls) != 1 {
		t.Fatalf("expected one sms, got %d", len(f.sms.calls))
	}
	wantBody := "Your BodyClone verification code is: " + ch.Code + ". This code expires in 5 minutes."
	if f.sms.calls[0].Body != wantBody {
		t.Errorf("sms body = %q, want %q", f.sms.calls[0].Body, wantBody)
	}
	if f.sms.calls[0].To != "+15550001234" {
		t.Errorf("sms to = %q", f.sms.calls[0].To)
	}
}

func TestIssueReplacesExistingCode(t *testing.T) {
	// Arrange
	f := newFixture(t)
	if _, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"}); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	first := f.repo.createCalls[0].Code

	// Act
	if _, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"}); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}

	// Assert
	second := f.repo.createCalls[1].Code
	if _, err := f.repo.GetChallengeByPhoneCode(context.Background(), "+15550001234", first); first != second && !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("expected first code to be superseded, still present")
	}
	if _, err := f.repo.GetChallengeByPhoneCode(context.Background(), "+15550001234", second); err != nil {
		t.Errorf("expected second code to be active: %v", err)
	}
}

func TestIssueSMSFailureRollsBack(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.sms.err = errors.New("twilio: unreachable")

	// Act
	_, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"})

	// Assert
	assertGoError(t, err, "Failed to send SMS. Please check your phone number.", goerror.CodeInternal)
	if len(f.repo.deleteByPhoneCalls) != 2 {
		t.Errorf("expected rollback delete after sms failure, got %d deletes", len(f.repo.deleteByPhoneCalls))
	}
	if len(f.throttle.releaseCalls) != 1 || f.throttle.releaseCalls[0] != "+15550001234" {
		t.Errorf("expected throttle released, got %v", f.throttle.releaseCalls)
	}
	if len(f.repo.challenges) != 0 {
		t.Errorf("expected no challenge left, got %d", len(f.repo.challenges))
	}
}

func TestIssueStoreFailure(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.createErr = errors.New("pg: down")

	// Act
	_, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"})

	// Assert
	assertGoError(t, err, "Failed to generate OTP", goerror.CodeInternal)
	if len(f.sms.calls) != 0 {
		t.Errorf("expected no sms on store failure, got %d", len(f.sms.calls))
	}
	if len(f.throttle.releaseCalls) != 1 || f.throttle.releaseCalls[0] != "+15550001234" {
		t.Errorf("expected throttle released on store failure, got %v", f.throttle.releaseCalls)
	}
}

func TestIssueDeleteFailureReleasesThrottle(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.deleteErr = errors.New("pg: down")

	// Act
	_, err := f.uc.Issue(context.Background(), IssueInput{Dest: "+15550001234"})

	// Assert
	assertGoError(t, err, "Failed to generate OTP", goerror.CodeInternal)
	if len(f.repo.createCalls) != 0 {
		t.Errorf("expected no challenge stored, got %d", len(f.repo.createCalls))
	}
	if len(f.throttle.releaseCalls) != 1 || f.throttle.releaseCalls[0] != "+15550001234" {
		t.Errorf("expected throttle released on delete failure, got %v", f.throttle.releaseCalls)
	}
}
