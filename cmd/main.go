package main

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/vmsouza/musicctl/internal/catalog"
	"github.com/vmsouza/musicctl/internal/channel"
	"github.com/vmsouza/musicctl/internal/session"
	"github.com/vmsouza/musicctl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store *session.Store
	var client *catalog.Client
	bus := channel.New()

	if db, err := session.Open(config.Session.Path); err == nil {
		store = session.NewStore(db, config.API.BaseURL, nil, logger)
		client = catalog.NewClient(store, bus, catalog.Options{
			BaseURL:           config.API.BaseURL,
			Delay:             time.Duration(config.Client.LoadDelayMS) * time.Millisecond,
			RequestsPerSecond: config.Client.RequestsPerSecond,
			Logger:            logger,
		})
	} else {
		logger.Warn("session database unavailable", "path", config.Session.Path, "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Store:   store,
		Catalog: client,
		Bus:     bus,
		Logger:  logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "musicctl",
		Usage:    "Manage the music catalog from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}
}
