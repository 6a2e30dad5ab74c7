package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"github.com/bodyclone/healthhub/internal/verification/entity"
)

type fakeRepo struct {
	challenges map[string]*entity.Challenge // keyed by phone|code

	createErr     error
	deleteErr     error
	deleteByIDErr error
	profileErr    error

	createCalls        []entity.Challenge
	deleteByPhoneCalls []string
	deleteByIDCalls    []int64
	profileCalls       []entity.NewProfile

	profileUserID string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{challenges: map[string]*entity.Challenge{}}
}

func (f *fakeRepo) GetChallengeByPhoneCode(_ context.Context, phoneNumber, code string) (*entity.Challenge, error) {
	ch, ok := f.challenges[phoneNumber+"|"+code]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return ch, nil
}

func (f *fakeRepo) CreateChallenge(_ context.Context, in entity.Challenge) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createCalls = append(f.createCalls, in)
	f.challenges[in.PhoneNumber+"|"+in.Code] = &in
	return nil
}

func (f *fakeRepo) DeleteChallengesByPhone(_ context.Context, phoneNumber string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleteByPhoneCalls = append(f.deleteByPhoneCalls, phoneNumber)
	for k, ch := range f.challenges {
		if ch.PhoneNumber == phoneNumber {
			delete(f.challenges, k)
		}
	}
	return nil
}

func (f *fakeRepo) DeleteChallenge(_ context.Context, id int64) error {
	if f.deleteByIDErr != nil {
		return f.deleteByIDErr
	}
	f.deleteByIDCalls = append(f.deleteByIDCalls, id)
	for k, ch := range f.challenges {
		if ch.ID == id {
			delete(f.challenges, k)
		}
	}
	return nil
}

func (f *fakeRepo) GetProfileUserIDByPhone(_ context.Context, _ string) (string, error) {
	if f.profileUserID == "" {
		return "", goerror.ErrNotFound
	}
	return f.profileUserID, nil
}

func (f *fakeRepo) CreateProfileWithRole(_ context.Context, in entity.NewProfile) error {
	f.profileCalls = append(f.profileCalls, in)
	return f.profileErr
}

type fakeSMS struct {
	err   error
	calls []struct{ To, Body string }
}

func (f *fakeSMS) Send(_ context.Context, to, body string) (string, error) {
	f.calls = append(f.calls, struct{ To, Body string }{to, body})
	if f.err != nil {
		return "", f.err
	}
	return "SM123", nil
}

type fakeIDP struct {
	createErr   error
	createCalls []idp.CreateUserInput
	userID      string
}

func (f *fakeIDP) CreateUser(_ context.Context, in idp.CreateUserInput) (*idp.User, error) {
	f.createCalls = append(f.createCalls, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &idp.User{ID: f.userID, Email: in.Email}, nil
}

func (f *fakeIDP) SignUp(_ context.Context, in idp.SignUpInput) (*idp.User, error) {
	return &idp.User{ID: f.userID, Email: in.Email}, nil
}

func (f *fakeIDP) SignIn(context.Context, string, string) (*idp.Session, error) {
	return nil, nil
}

func (f *fakeIDP) Recover(context.Context, string, string) error { return nil }

func (f *fakeIDP) UpdatePassword(context.Context, string, string) error { return nil }

type fakeThrottle struct {
	denied       bool
	acquireErr   error
	acquireCalls []string
	releaseCalls []string
}

func (f *fakeThrottle) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.acquireCalls = append(f.acquireCalls, key)
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	return !f.denied, nil
}

func (f *fakeThrottle) Release(_ context.Context, key string) error {
	f.releaseCalls = append(f.releaseCalls, key)
	return nil
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fixture struct {
	uc       *Usecase
	repo     *fakeRepo
	sms      *fakeSMS
	idp      *fakeIDP
	throttle *fakeThrottle
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  verification:
    code_ttl_minutes: 5
    resend_cooldown_seconds: 60
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	f := &fixture{
		repo:     newFakeRepo(),
		sms:      &fakeSMS{},
		idp:      &fakeIDP{userID: "user-1"},
		throttle: &fakeThrottle{},
		clock:    &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	f.uc = New(Dependency{
		RepoDB:     f.repo,
		SMS:        f.sms,
		IDP:        f.idp,
		Throttle:   f.throttle,
		Validator:  v10,
		Config:     cfg,
		UID:        &fakeUID{},
		Clock:      f.clock,
		Instrument: instrument.NewNoop(),
	})

	return f
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
