package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run starts the interactive command loop.
func (a *App) Run(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to messagely CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "msgly %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: users, me, inbox, sent, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			a.report(a.Register(ctx))

		case "login":
			a.report(a.Login(ctx))

		case "users":
			a.report(a.Users(ctx))

		case "me":
			a.report(a.Me(ctx))

		case "inbox":
			a.report(a.Inbox(ctx))

		case "sent":
			a.report(a.Sent(ctx))

		case "exit":
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s %v\n", cmd, args)
		}
	}
}

func (a *App) report(err error) {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
