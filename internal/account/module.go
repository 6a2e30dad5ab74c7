package account

import (
	"github.com/bodyclone/healthhub/internal/account/inbound"
	"github.com/bodyclone/healthhub/internal/account/outbound/db"
	"github.com/bodyclone/healthhub/internal/account/usecase"
	"github.com/bodyclone/healthhub/internal/pkg/clock"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/router"
	"github.com/bodyclone/healthhub/internal/pkg/storage"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	IDP        idp.Client                 `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
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
		IDP:        dep.IDP,
		Storage:    dep.Storage,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
