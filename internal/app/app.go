package app

import (
	"context"
	"net/http"

	"github.com/bodyclone/healthhub/internal/pkg/clock"
	"github.com/bodyclone/healthhub/internal/pkg/config"
	"github.com/bodyclone/healthhub/internal/pkg/goroutine"
	"github.com/bodyclone/healthhub/internal/pkg/idp"
	"github.com/bodyclone/healthhub/internal/pkg/instrument"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
	"github.com/bodyclone/healthhub/internal/pkg/router"
	"github.com/bodyclone/healthhub/internal/pkg/sms"
	"github.com/bodyclone/healthhub/internal/pkg/storage"
	"github.com/bodyclone/healthhub/internal/pkg/throttle"
	"github.com/bodyclone/healthhub/internal/pkg/uid"
	"github.com/bodyclone/healthhub/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	throttle  throttle.Throttle
	sms       sms.Sender
	idp       idp.Client
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initSMS()
	app.initIDP()
	app.initStorage()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
