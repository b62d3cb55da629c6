package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vmsouza/musicctl/internal/session"
	"github.com/vmsouza/musicctl/internal/shared"
)

// Setup writes the config template when missing and initializes the
// session database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing session database", "path", config.Session.Path)

	db, err := session.Open(config.Session.Path)
	if err != nil {
		return fmt.Errorf("failed to create session database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for session database: %v", config.Session.Path)
	r.writePlain("✓ Setup complete\n")
	return nil
}
