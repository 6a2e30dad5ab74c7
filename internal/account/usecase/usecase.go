package usecase

import (
	"context"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/clock"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/storage"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetProfileByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	CreateProfileWithRole(ctx context.Context, in entity.NewProfile) error
	UpdateProfile(ctx context.Context, in entity.UpdateProfile) error
	SetAvatarURL(ctx context.Context, userID string, avatarURL *string) error
}

type Usecase struct {
	repoDB    repoDB
	idp       idp.Client
	storage   storage.Storage
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	IDP        idp.Client
	Storage    storage.Storage
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		idp:       dep.IDP,
		storage:   dep.Storage,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}
