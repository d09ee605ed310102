package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sendpin/sendpin/internal/pkg/clock"
	"github.com/sendpin/sendpin/internal/pkg/config"
	"github.com/sendpin/sendpin/internal/pkg/goroutine"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/sendpin/sendpin/internal/pkg/messaging"
	"github.com/sendpin/sendpin/internal/pkg/pin"
	"github.com/sendpin/sendpin/internal/pkg/router"
	"github.com/sendpin/sendpin/internal/pkg/storage"
	"github.com/sendpin/sendpin/internal/pkg/uid"
	"github.com/sendpin/sendpin/internal/pkg/validator"
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
	pin       pin.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	messaging messaging.Messaging
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
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
