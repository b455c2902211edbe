package messages

import (
	"context"

	"github.com/messagely/messagely/internal/server/models"
)

// Repository serves a user's message threads. Each returned message carries
// the other party's public profile, never their credentials.
type Repository interface {
	// From returns messages the user has sent, counterpart = recipient.
	From(ctx context.Context, username string) ([]*models.Message, error)

	// To returns messages the user has received, counterpart = sender.
	To(ctx context.Context, username string) ([]*models.Message, error)
}
