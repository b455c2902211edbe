package users

import (
	"context"

	"github.com/messagely/messagely/internal/server/models"
)

// Repository is the storage contract for user records. Username uniqueness
// and atomicity of the single-row operations are the store's job.
type Repository interface {
	// Create inserts a new user. A duplicate username yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetWithDigest returns the user including the stored password digest.
	// For the login path only; everything else goes through Get.
	GetWithDigest(ctx context.Context, username string) (*models.User, error)

	// UpdateLastLogin stamps last_login_at with the current time.
	// A missing user yields common.ErrorNotFound.
	UpdateLastLogin(ctx context.Context, username string) error

	// Get returns the user's public fields; PasswordHash stays empty.
	Get(ctx context.Context, username string) (*models.User, error)

	// List returns all users' public fields ordered by username.
	List(ctx context.Context) ([]*models.User, error)
}
