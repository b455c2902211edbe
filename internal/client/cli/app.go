// Package cli implements the interactive messagely client.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/messagely/messagely/internal/client/api"
	"github.com/messagely/messagely/internal/client/config"
)

// App is the interactive shell around the API client.
type App struct {
	config   *config.Config
	client   *api.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(cfg *config.Config) (*App, error) {
	return &App{
		config: cfg,
		client: api.NewClient(cfg.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}
