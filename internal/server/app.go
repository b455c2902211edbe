// Package server initializes and runs the main application server.
// It opens storage, wires the credential and directory services, handles
// graceful shutdown, and starts the HTTP endpoint.
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

	"github.com/messagely/messagely/internal/logging"
	"github.com/messagely/messagely/internal/server/auth"
	"github.com/messagely/messagely/internal/server/config"
	"github.com/messagely/messagely/internal/server/httpapi"
	"github.com/messagely/messagely/internal/server/repositories/messages"
	"github.com/messagely/messagely/internal/server/repositories/users"
	"github.com/messagely/messagely/internal/server/services"
	"github.com/messagely/messagely/internal/server/storage"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	tokens    *auth.TokenService
	directory *services.DirectoryService
	sessions  *services.SessionService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenService([]byte(c.SecretKey))

	directory := services.NewDirectoryService(
		users.NewPostgresRepository(db), messages.NewPostgresRepository(db), hasher, logger)
	sessions := services.NewSessionService(directory, tokens, logger)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		tokens:    tokens,
		directory: directory,
		sessions:  sessions,
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
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.sessions, app.directory, app.tokens)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
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
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
