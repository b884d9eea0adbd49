package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"emoticon-rest-api/internal/app"
	"emoticon-rest-api/internal/config"
	"emoticon-rest-api/internal/logging"

	"github.com/spf13/cobra"
)

// rootCommand returns the CLI. Without a subcommand it behaves like serve.
func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Emoticon REST API",
		Long:          `Authenticates users and serves their cached emoticon images.`,
		SilenceUsage:  true,
		RunE:          runServe,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Apply migrations and start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
	)

	return cmd
}

func setup() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.App.LogLevel, cfg.App.LogOutputFormat()).With("app", cfg.App.Name)
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "starting emoticon api", "env", cfg.App.Environment, "version", app.Version)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		return err
	}

	log.Info(context.Background(), "server stopped")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	return app.Migrate(cmd.Context(), cfg.Database, log)
}
