package usecase

import (
	"context"

	"github.com/bodyclone/healthhub/internal/pkg/clock"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/sms"
	"github.com/bodyclone/healthhub/internal/pkg/throttle"
	"github.com/bodyclone/healthhub/internal/pkg/uid"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"github.com/bodyclone/healthhub/internal/verification/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetChallengeByPhoneCode(ctx context.Context, phoneNumber, code string) (*entity.Challenge, error)
	CreateChallenge(ctx context.Context, in entity.Challenge) error
	DeleteChallengesByPhone(ctx context.Context, phoneNumber string) error
	DeleteChallenge(ctx context.Context, id int64) error

	GetProfileUserIDByPhone(ctx context.Context, phoneNumber string) (string, error)
	CreateProfileWithRole(ctx context.Context, in entity.NewProfile) error
}

type Usecase struct {
	repoDB    repoDB
	sms       sms.Sender
	idp       idp.Client
	throttle  throttle.Throttle
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	SMS        sms.Sender
	IDP        idp.Client
	Throttle   throttle.Throttle
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		sms:       dep.SMS,
		idp:       dep.IDP,
		throttle:  dep.Throttle,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}
