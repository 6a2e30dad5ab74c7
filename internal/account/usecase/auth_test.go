package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
)

func TestSignUpSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.SignUp(context.Background(), SignUpInput{
		Email:    "  Jane@Example.COM ",
		Password: "secret123",
		FullName: "Jane Doe",
		Role:     "doctor",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.UserID != "user-1" {
		t.Errorf("userID = %q", out.UserID)
	}
	if out.Message != "Account created successfully. Please check your email to confirm your address." {
		t.Errorf("message = %q", out.Message)
	}

	if len(f.idp.signUpCalls) != 1 {
		t.Fatalf("expected one provider signup, got %d", len(f.idp.signUpCalls))
	}
	in := f.idp.signUpCalls[0]
	if in.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", in.Email)
	}
	if in.Metadata.Role != "doctor" {
		t.Errorf("role = %q", in.Metadata.Role)
	}

	if len(f.repo.createCalls) != 1 {
		t.Fatalf("expected one profile row, got %d", len(f.repo.createCalls))
	}
	if f.repo.createCalls[0].Role != "doctor" {
		t.Errorf("profile role = %q", f.repo.createCalls[0].Role)
	}
}

func TestSignUpDefaultsRoleToPatient(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.SignUp(context.Background(), SignUpInput{
		Email:    "jane@example.com",
		Password: "secret123",
		FullName: "Jane Doe",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.idp.signUpCalls[0].Metadata.Role != "patient" {
		t.Errorf("role = %q, want patient", f.idp.signUpCalls[0].Metadata.Role)
	}
}

func TestSignUpInvalidInput(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.SignUp(context.Background(), SignUpInput{
		Email:    "not-an-email",
		Password: "short",
		FullName: "",
	})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.idp.signUpCalls) != 0 {
		t.Errorf("expected no provider call, got %d", len(f.idp.signUpCalls))
	}
}

func TestSignUpProviderRejection(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.idp.signUpErr = &idp.Error{Status: 422, Message: "User already registered"}

	// Act
	_, err := f.uc.SignUp(context.Background(), SignUpInput{
		Email:    "jane@example.com",
		Password: "secret123",
		FullName: "Jane Doe",
	})

	// Assert
	assertGoError(t, err, "User already registered", goerror.CodeInvalidInput)
}

func TestSignUpProfileFailureStillSucceeds(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.profileErr = errors.New("pg: down")

	// Act
	out, err := f.uc.SignUp(context.Background(), SignUpInput{
		Email:    "jane@example.com",
		Password: "secret123",
		FullName: "Jane Doe",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.UserID != "user-1" {
		t.Errorf("userID = %q", out.UserID)
	}
}

func TestSignInSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.idp.session = &idp.Session{
		AccessToken:  "at",
		RefreshToken: "rt",
		TokenType:    "bearer",
		ExpiresIn:    time.Hour,
		User:         idp.User{ID: "user-1", Email: "jane@example.com"},
	}

	// Act
	out, err := f.uc.SignIn(context.Background(), SignInInput{Email: "Jane@Example.com", Password: "secret123"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccessToken != "at" || out.RefreshToken != "rt" || out.TokenType != "bearer" {
		t.Errorf("session = %+v", out)
	}
	if out.ExpiresIn != 3600 {
		t.Errorf("expiresIn = %d, want seconds", out.ExpiresIn)
	}
	if f.idp.signInCalls[0].Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased", f.idp.signInCalls[0].Email)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.idp.signInErr = &idp.Error{Status: 400, Message: "Invalid login credentials"}

	// Act
	_, err := f.uc.SignIn(context.Background(), SignInInput{Email: "jane@example.com", Password: "wrong"})

	// Assert
	assertGoError(t, err, "Invalid login credentials", goerror.CodeUnauthorized)
}

func TestPasswordForgotAlwaysSucceeds(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.idp.recoverErr = &idp.Error{Status: 400, Message: "User not found"}

	// Act
	out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "ghost@example.com"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "If an account exists for that email, a reset link has been sent." {
		t.Errorf("message = %q", out.Message)
	}
	if len(f.idp.recoverCalls) != 1 {
		t.Fatalf("expected provider recover call, got %d", len(f.idp.recoverCalls))
	}
	if f.idp.recoverCalls[0].RedirectTo != "https://app.example.com/auth/reset" {
		t.Errorf("redirectTo = %q", f.idp.recoverCalls[0].RedirectTo)
	}
}

func TestPasswordUpdateRequiresAuth(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.PasswordUpdate(context.Background(), PasswordUpdateInput{AccessToken: "at", Password: "secret123"})

	// Assert
	assertGoError(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestPasswordUpdateSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	out, err := f.uc.PasswordUpdate(ctx, PasswordUpdateInput{AccessToken: "at", Password: "newsecret1"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "Password updated successfully." {
		t.Errorf("message = %q", out.Message)
	}
	if len(f.idp.passwordCalls) != 1 || f.idp.passwordCalls[0].Token != "at" {
		t.Errorf("provider calls = %+v", f.idp.passwordCalls)
	}
}
