// Package httpapi exposes the service over JSON/HTTP: the session endpoints
// (login, register), the user directory routes, and the per-request
// authorization chain that gates them.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/messagely/messagely/internal/logging"
	"github.com/messagely/messagely/internal/server/auth"
	"github.com/messagely/messagely/internal/server/models"
)

// SessionService is the slice of the session layer the handlers need.
type SessionService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error)
}

// DirectoryService is the slice of the directory the handlers need.
type DirectoryService interface {
	Get(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	MessagesFrom(ctx context.Context, username string) ([]*models.Message, error)
	MessagesTo(ctx context.Context, username string) ([]*models.Message, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	sessions  SessionService
	directory DirectoryService
	tokens    *auth.TokenService
}

func NewServer(address string, logger logging.Logger, sessions SessionService,
	directory DirectoryService, tokens *auth.TokenService) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "httpapi"),
		sessions:  sessions,
		directory: directory,
		tokens:    tokens,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
