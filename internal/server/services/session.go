package services

import (
	"context"

	"github.com/messagely/messagely/internal/logging"
	"github.com/messagely/messagely/internal/server/auth"
)

// SessionService composes the directory and token service into the two
// state-changing session operations: login and register. Both hand back a
// signed token that is the caller's entire session.
type SessionService struct {
	directory *DirectoryService
	tokens    *auth.TokenService
	logger    logging.Logger
}

func NewSessionService(directory *DirectoryService, tokens *auth.TokenService, logger logging.Logger) *SessionService {
	return &SessionService{
		directory: directory,
		tokens:    tokens,
		logger:    logger.With("module", "session"),
	}
}

// Login verifies the credentials and issues a token. The last-login stamp
// runs in its own goroutine: its failure is logged and must never delay or
// abort the login response.
func (s *SessionService) Login(ctx context.Context, username, password string) (string, error) {
	if err := s.directory.Authenticate(ctx, username, password); err != nil {
		return "", err
	}

	go func() {
		ctx := context.WithoutCancel(ctx)
		if err := s.directory.UpdateLastLogin(ctx, username); err != nil {
			s.logger.Warn(ctx, "last-login update failed", "username", username, "error", err)
		}
	}()

	return s.tokens.Issue(username)
}

// Register creates the account and immediately issues a token for it, so a
// fresh registration doubles as a login.
func (s *SessionService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error) {
	if _, err := s.directory.Register(ctx, username, password, firstName, lastName, phone); err != nil {
		return "", err
	}

	return s.tokens.Issue(username)
}
