// Package server initializes and runs the main application server.
// It opens the database, runs migrations, wires the service layer and
// starts the HTTP server, handling graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/consentchain/consentchain/internal/logging"
	"github.com/consentchain/consentchain/internal/server/config"
	"github.com/consentchain/consentchain/internal/server/httpapi"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
	"github.com/consentchain/consentchain/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	users     *services.UserService
	files     *services.FileService
	grants    *services.GrantService
	access    *services.AccessService
	timeline  *services.TimelineService
	analytics *services.AnalyticsService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// The database container may still be coming up; back off instead of
	// failing on the first refused connection.
	backoff := retry.WithMaxRetries(10, retry.NewFibonacci(500*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		users:     services.NewUserService(db, rm),
		files:     services.NewFileService(db, rm, cfg),
		grants:    services.NewGrantService(db, rm),
		access:    services.NewAccessService(db, rm, cfg),
		timeline:  services.NewTimelineService(db, rm),
		analytics: services.NewAnalyticsService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.users, app.files, app.grants, app.access, app.timeline, app.analytics,
		app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
