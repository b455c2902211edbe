// Package config handles configuration for the client component.
package config

import (
	"flag"
	"os"

	"github.com/messagely/messagely/internal/flagx"
)

// Config holds runtime settings for the messagely CLI client.
type Config struct {
	ServerEndpointAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
}

// LoadConfig builds a Config by applying defaults and overlaying
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&config.ServerEndpointAddr, "e", config.ServerEndpointAddr, "server endpoint address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
