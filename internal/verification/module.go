package verification

import (
	"github.com/bodyclone/healthhub/internal/pkg/clock"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/router"
	"github.com/bodyclone/healthhub/internal/pkg/sms"
	"github.com/bodyclone/healthhub/internal/pkg/throttle"
	"github.com/bodyclone/healthhub/internal/pkg/uid"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"github.com/bodyclone/healthhub/internal/verification/inbound"
	"github.com/bodyclone/healthhub/internal/verification/outbound/db"
	"github.com/bodyclone/healthhub/internal/verification/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	SMS        sms.Sender                 `validate:"required"`
	IDP        idp.Client                 `validate:"required"`
	Throttle   throttle.Throttle          `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		SMS:        dep.SMS,
		IDP:        dep.IDP,
		Throttle:   dep.Throttle,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
