// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/habitcheck/internal/civil"
	"github.com/dmitrijs2005/habitcheck/internal/logging"
	"github.com/dmitrijs2005/habitcheck/internal/server/config"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/habitcheck/internal/server/services"
	"github.com/dmitrijs2005/habitcheck/internal/server/tokens"
	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"

	hs "github.com/dmitrijs2005/habitcheck/internal/server/http"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.AccountService
	entryService *services.EntryService
}

// NewApp opens the store, applies migrations and builds the services. The
// returned App owns the database handle until Run returns.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dialect, err := repomanager.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	goose.SetLogger(logging.NewPrintfAdapter(logger.With("module", "migrations")))

	m := repomanager.NewRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "database ready", "dialect", string(m.Dialect()))

	clock, err := civil.NewClock(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	us := services.NewAccountService(db, m, tokens.NewGenerator(nil))
	es := services.NewEntryService(db, m, us, clock)

	return &App{config: c, logger: logger, db: db, userService: us, entryService: es}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run seeds the admin account, then serves until ctx is cancelled or a
// termination signal arrives. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if t := app.config.AdminToken; t != "" && !tokens.Valid(t) {
		app.logger.Warn(ctx, "admin token is not a 6-letter A-Z code, using it as given",
			"username", app.config.AdminUsername)
	}

	result, err := app.userService.Bootstrap(ctx, app.config.AdminUsername, app.config.AdminToken)
	if err != nil {
		app.logger.Error(ctx, "admin bootstrap failed", "username", app.config.AdminUsername, "error", err.Error())
		return err
	}
	app.logger.Info(ctx, "admin account ready", "username", app.config.AdminUsername, "result", string(result))

	if app.config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.logger,
		app.userService, app.entryService, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
