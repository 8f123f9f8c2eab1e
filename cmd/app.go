package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/logger"
	"github.com/supermega/opsd/internal/version"
	"github.com/urfave/cli/v3"
)

func App() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to config file",
		Aliases: []string{"c"},
		Sources: cli.EnvVars("OPSD_CONFIG_PATH"),
	}
	modeFlag := &cli.StringFlag{
		Name:     "mode",
		Usage:    "Daemon mode: serve/automate",
		Aliases:  []string{"m"},
		Required: true,
		Sources:  cli.EnvVars("OPSD_DAEMON_MODE"),
	}

	app := &cli.Command{
		Name:    "opsd",
		Usage:   "Super Mega marketing-ops daemon: contact API and platform automation",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:  "daemon",
				Usage: "Running in a daemon mode: serve/automate",
				Flags: []cli.Flag{
					configFlag,
					modeFlag,
				},
				Action: func(_ context.Context, c *cli.Command) error {
					mode := c.String("mode")
					cfg := loadConfig(c, mode)

					switch mode {
					case config.ModeServe:
						RunServeMode(cfg)
					case config.ModeAutomate:
						RunAutomateMode(cfg)
					default:
						log.Fatalf("unknown mode: %s", mode)
					}
					return nil
				},
			},

			// Validate command
			{
				Name:  "validate",
				Usage: "Validate the config file without running the application",
				Flags: []cli.Flag{
					configFlag,
					modeFlag,
				},
				Action: func(_ context.Context, c *cli.Command) error {
					mode := c.String("mode")
					if mode == "" {
						log.Fatal("required flag 'mode' is empty")
					}
					_ = loadConfig(c, mode)
					fmt.Println("Configuration is valid.")
					return nil
				},
			},
		},
	}

	return app
}

func loadConfig(c *cli.Command, mode string) *config.Config {
	configPath := c.String("config")

	// 1) if -c flag is set -> must read config from file
	// 2) if $OPSD_CONFIG_PATH is set -> must read config from file
	// 3) read config with go-envconfig otherwise
	var cfg *config.Config
	if configPath != "" {
		cfg = config.MustLoad(configPath, mode)
	} else {
		cfg = config.MustEnvconfig(mode)
	}

	// debug config (NOTE: sensitive fields are hidden)
	_, _ = fmt.Fprintf(os.Stderr, "STARTING WITH CONFIGURATION (%s):\n%s\n\n",
		filepath.ToSlash(configPath),
		cfg.String(),
	)

	logger.Init(&logger.Opts{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	return cfg
}
