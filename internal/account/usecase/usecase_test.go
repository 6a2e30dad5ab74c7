package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
	"github.com/bodyclone/healthhub/internal/pkg/storage"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

type fakeRepo struct {
	profile    *entity.Profile
	getErr     error
	updateErr  error
	avatarErr  error
	profileErr error

	createCalls []entity.NewProfile
	updateCalls []entity.UpdateProfile
	avatarCalls []struct {
		UserID string
		URL    *string
	}
}

func (f *fakeRepo) GetProfileByUserID(_ context.Context, _ string) (*entity.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.profile == nil {
		return nil, goerror.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeRepo) CreateProfileWithRole(_ context.Context, in entity.NewProfile) error {
	f.createCalls = append(f.createCalls, in)
	return f.profileErr
}

func (f *fakeRepo) UpdateProfile(_ context.Context, in entity.UpdateProfile) error {
	f.updateCalls = append(f.updateCalls, in)
	return f.updateErr
}

func (f *fakeRepo) SetAvatarURL(_ context.Context, userID string, avatarURL *string) error {
	f.avatarCalls = append(f.avatarCalls, struct {
		UserID string
		URL    *string
	}{userID, avatarURL})
	return f.avatarErr
}

type fakeIDP struct {
	signUpErr   error
	signInErr   error
	recoverErr  error
	passwordErr error

	signUpCalls   []idp.SignUpInput
	signInCalls   []struct{ Email, Password string }
	recoverCalls  []struct{ Email, RedirectTo string }
	passwordCalls []struct{ Token, Password string }

	session *idp.Session
}

func (f *fakeIDP) CreateUser(_ context.Context, in idp.CreateUserInput) (*idp.User, error) {
	return &idp.User{ID: "user-1", Email: in.Email}, nil
}

func (f *fakeIDP) SignUp(_ context.Context, in idp.SignUpInput) (*idp.User, error) {
	f.signUpCalls = append(f.signUpCalls, in)
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &idp.User{ID: "user-1", Email: in.Email}, nil
}

func (f *fakeIDP) SignIn(_ context.Context, email, password string) (*idp.Session, error) {
	f.signInCalls = append(f.signInCalls, struct{ Email, Password string }{email, password})
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeIDP) Recover(_ context.Context, email, redirectTo string) error {
	f.recoverCalls = append(f.recoverCalls, struct{ Email, RedirectTo string }{email, redirectTo})
	return f.recoverErr
}

func (f *fakeIDP) UpdatePassword(_ context.Context, accessToken, newPassword string) error {
	f.passwordCalls = append(f.passwordCalls, struct{ Token, Password string }{accessToken, newPassword})
	return f.passwordErr
}

type fakeStorage struct {
	putErr    error
	deleteErr error

	putCalls []struct {
		Bucket, Key, ContentType string
		Body                     []byte
		ReadErr                  error
	}
	deleteCalls []struct{ Bucket, Key string }
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, body io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(body)
	f.putCalls = append(f.putCalls, struct {
		Bucket, Key, ContentType string
		Body                     []byte
		ReadErr                  error
	}{bucket, key, opts.ContentType, data, err})
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, bucket, key string) error {
	f.deleteCalls = append(f.deleteCalls, struct{ Bucket, Key string }{bucket, key})
	return f.deleteErr
}

func (f *fakeStorage) Close() error { return nil }

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fixture struct {
	uc      *Usecase
	repo    *fakeRepo
	idp     *fakeIDP
	storage *fakeStorage
	clock   *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  account:
    password_reset_redirect_url: https://app.example.com/auth/reset
    avatar_bucket: avatars
    avatar_base_url: https://cdn.example.com/avatars
    avatar_max_size_bytes: 64
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	f := &fixture{
		repo:    &fakeRepo{},
		idp:     &fakeIDP{},
		storage: &fakeStorage{},
		clock:   &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	f.uc = New(Dependency{
		RepoDB:     f.repo,
		IDP:        f.idp,
		Storage:    f.storage,
		Validator:  v10,
		Config:     cfg,
		Clock:      f.clock,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func authContext(userID, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: userID},
		Email:            email,
	})
}

func assertGoError(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	gerr, ok := err.(*goerror.Error) //nolint:errorlint // direct return value
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.Msg() != msg {
		t.Errorf("message = %q, want %q", gerr.Msg(), msg)
	}
	if gerr.Code() != code {
		t.Errorf("code = %d, want %d", gerr.Code(), code)
	}
}
