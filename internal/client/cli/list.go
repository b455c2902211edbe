package cli

import (
	"context"
	"fmt"

	"github.com/messagely/messagely/internal/server/models"
)

// Users prints the public directory.
func (a *App) Users(ctx context.Context) error {
	users, err := a.client.Users(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Fprintf(a.out, "%s\t%s %s\t%s\n", u.Username, u.FirstName, u.LastName, u.Phone)
	}
	return nil
}

// Me prints the logged-in user's own record.
func (a *App) Me(ctx context.Context) error {
	user, err := a.client.User(ctx, a.userName)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\t%s %s\t%s\n", user.Username, user.FirstName, user.LastName, user.Phone)
	fmt.Fprintf(a.out, "joined: %s\n", user.JoinedAt.Format("2006-01-02 15:04"))
	if user.LastLoginAt != nil {
		fmt.Fprintf(a.out, "last login: %s\n", user.LastLoginAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Inbox prints the incoming message thread.
func (a *App) Inbox(ctx context.Context) error {
	msgs, err := a.client.MessagesTo(ctx, a.userName)
	if err != nil {
		return err
	}
	a.printThread(msgs, "from")
	return nil
}

// Sent prints the outgoing message thread.
func (a *App) Sent(ctx context.Context) error {
	msgs, err := a.client.MessagesFrom(ctx, a.userName)
	if err != nil {
		return err
	}
	a.printThread(msgs, "to")
	return nil
}

func (a *App) printThread(msgs []*models.Message, direction string) {
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "(no messages)")
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "[%s] %s %s: %s\n",
			m.SentAt.Format("2006-01-02 15:04"), direction, m.Counterpart.Username, m.Body)
	}
}
