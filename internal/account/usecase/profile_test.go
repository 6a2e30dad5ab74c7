package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/samber/lo"
)

func TestProfileRequiresAuth(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.Profile(context.Background())

	// Assert
	assertGoError(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestProfileNotFound(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	_, err := f.uc.Profile(ctx)

	// Assert
	assertGoError(t, err, "Profile not found", goerror.CodeNotFound)
}

func TestProfileSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.repo.profile = &entity.Profile{
		UserID:      "user-1",
		FullName:    "Jane Doe",
		Age:         lo.ToPtr(int32(30)),
		Gender:      "female",
		PhoneNumber: "+15550001234",
		AvatarURL:   "https://cdn.example.com/avatars/user-1/avatar.png",
		Role:        "patient",
	}
	ctx := authContext("user-1", "jane@example.com")

	// Act
	out, err := f.uc.Profile(ctx)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Email != "jane@example.com" {
		t.Errorf("email = %q, want claims email", out.Email)
	}
	if out.FullName != "Jane Doe" || out.Role != "patient" {
		t.Errorf("profile = %+v", out)
	}
}

func TestProfileUpdateNormalizesPhone(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	out, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{
		FullName:    "Jane Doe",
		PhoneNumber: " +1 555 000 1234 ",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "Profile updated successfully." {
		t.Errorf("message = %q", out.Message)
	}
	if len(f.repo.updateCalls) != 1 {
		t.Fatalf("expected one update, got %d", len(f.repo.updateCalls))
	}
	if f.repo.updateCalls[0].PhoneNumber != "+15550001234" {
		t.Errorf("phone = %q, want normalized", f.repo.updateCalls[0].PhoneNumber)
	}
}

func TestProfileUpdateRejectsInvalidPhone(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	_, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{
		FullName:    "Jane Doe",
		PhoneNumber: "notaphone",
	})

	// Assert
	var gerr *goerror.Error
	if err == nil || !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.repo.updateCalls) != 0 {
		t.Errorf("expected no update, got %d", len(f.repo.updateCalls))
	}
}

func TestAvatarUploadSuccess(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	out, err := f.uc.AvatarUpload(ctx, AvatarUploadInput{
		File:        bytes.NewReader([]byte("png-bytes")),
		ContentType: "image/png",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.storage.putCalls) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.storage.putCalls))
	}
	put := f.storage.putCalls[0]
	if put.Bucket != "avatars" || put.Key != "user-1/avatar.png" {
		t.Errorf("stored at %s/%s, want avatars/user-1/avatar.png", put.Bucket, put.Key)
	}
	if string(put.Body) != "png-bytes" {
		t.Errorf("body = %q", put.Body)
	}

	wantPrefix := "https://cdn.example.com/avatars/user-1/avatar.png?t="
	if !strings.HasPrefix(out.AvatarURL, wantPrefix) {
		t.Errorf("avatarURL = %q, want prefix %q", out.AvatarURL, wantPrefix)
	}
	if len(f.repo.avatarCalls) != 1 || f.repo.avatarCalls[0].URL == nil || *f.repo.avatarCalls[0].URL != out.AvatarURL {
		t.Errorf("avatar url not saved: %+v", f.repo.avatarCalls)
	}
}

func TestAvatarUploadUnsupportedType(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	_, err := f.uc.AvatarUpload(ctx, AvatarUploadInput{
		File:        strings.NewReader("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.storage.putCalls) != 0 {
		t.Errorf("expected no upload, got %d", len(f.storage.putCalls))
	}
}

func TestAvatarUploadTooLarge(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")
	oversized := bytes.Repeat([]byte("a"), 65) // limit is 64 in the fixture

	// Act
	_, err := f.uc.AvatarUpload(ctx, AvatarUploadInput{
		File:        bytes.NewReader(oversized),
		ContentType: "image/jpeg",
	})

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("expected too-large validation error, got %v", err)
	}
	if len(f.repo.avatarCalls) != 0 {
		t.Errorf("expected no avatar url saved, got %d", len(f.repo.avatarCalls))
	}
}

func TestAvatarRemove(t *testing.T) {
	// Arrange
	f := newFixture(t)
	ctx := authContext("user-1", "jane@example.com")

	// Act
	out, err := f.uc.AvatarRemove(ctx)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Message != "Avatar removed successfully." {
		t.Errorf("message = %q", out.Message)
	}

	wantKeys := []string{"user-1/avatar.jpg", "user-1/avatar.jpeg", "user-1/avatar.png", "user-1/avatar.webp"}
	if len(f.storage.deleteCalls) != len(wantKeys) {
		t.Fatalf("deletes = %d, want %d", len(f.storage.deleteCalls), len(wantKeys))
	}
	for i, key := range wantKeys {
		if f.storage.deleteCalls[i].Key != key {
			t.Errorf("delete[%d] = %q, want %q", i, f.storage.deleteCalls[i].Key, key)
		}
	}

	if len(f.repo.avatarCalls) != 1 || f.repo.avatarCalls[0].URL != nil {
		t.Errorf("expected avatar url cleared, got %+v", f.repo.avatarCalls)
	}
}
