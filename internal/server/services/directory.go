// Package services contains server-side business logic. This file implements
// DirectoryService, which owns the user identity lifecycle: registration,
// credential checks, last-login stamps, and lookups.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/messagely/messagely/internal/common"
	"github.com/messagely/messagely/internal/logging"
	"github.com/messagely/messagely/internal/server/auth"
	"github.com/messagely/messagely/internal/server/models"
	"github.com/messagely/messagely/internal/server/repositories/messages"
	"github.com/messagely/messagely/internal/server/repositories/users"
)

// DirectoryService validates, creates, and looks up users against storage.
// Password digests enter through Register and are compared in Authenticate;
// they never leave this service.
type DirectoryService struct {
	repo     users.Repository
	messages messages.Repository
	hasher   *auth.PasswordHasher
	logger   logging.Logger
}

func NewDirectoryService(repo users.Repository, msgs messages.Repository,
	hasher *auth.PasswordHasher, logger logging.Logger) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		messages: msgs,
		hasher:   hasher,
		logger:   logger.With("module", "directory"),
	}
}

// Register hashes the password and inserts the new user. Every field is
// required. A duplicate username surfaces as common.ErrorConflict so the
// endpoint can answer with a user-facing "taken" message.
func (s *DirectoryService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (*models.User, error) {
	if username == "" || password == "" || firstName == "" || lastName == "" || phone == "" {
		return nil, common.ErrorValidation
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks the password against the stored digest. A missing
// user and a wrong password produce the same common.ErrorInvalidCredentials
// so callers cannot probe which usernames exist.
func (s *DirectoryService) Authenticate(ctx context.Context, username, password string) error {
	user, err := s.repo.GetWithDigest(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		return common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return common.ErrorInvalidCredentials
	}

	return nil
}

// UpdateLastLogin stamps last_login_at for the user. A missing row maps to
// the same invalid-credentials sentinel; it only happens if the user
// disappeared between authenticate and the stamp.
func (s *DirectoryService) UpdateLastLogin(ctx context.Context, username string) error {
	err := s.repo.UpdateLastLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidCredentials
		}
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// Get returns a user's public record; the password digest is never filled.
func (s *DirectoryService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// List returns all users' public records in the store's stable order.
func (s *DirectoryService) List(ctx context.Context) ([]*models.User, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// MessagesFrom returns the user's outgoing thread.
func (s *DirectoryService) MessagesFrom(ctx context.Context, username string) ([]*models.Message, error) {
	result, err := s.messages.From(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error loading outgoing messages: %w", err)
	}
	return result, nil
}

// MessagesTo returns the user's incoming thread.
func (s *DirectoryService) MessagesTo(ctx context.Context, username string) ([]*models.Message, error) {
	result, err := s.messages.To(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error loading incoming messages: %w", err)
	}
	return result, nil
}
