package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blood-connect/cmd/cli/commands"
	"blood-connect/internal/config"
	"blood-connect/internal/pkg/logging"
	"blood-connect/internal/repository"
	"blood-connect/internal/service"
)

// app is populated by the root pre-run hook before any RunE executes.
var app = &commands.AppContext{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "bloodctl",
		Short: "Blood Connect admin CLI",
		Long:  `Operator tooling for the Blood Connect record store: seeding, matching, reminders and snapshots.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.SeedCmd(app))
	rootCmd.AddCommand(commands.StatsCmd(app))
	rootCmd.AddCommand(commands.MatchCmd(app))
	rootCmd.AddCommand(commands.RemindCmd(app))
	rootCmd.AddCommand(commands.SnapshotCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Environment)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	store, closeStore, err := config.NewRecordStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	repos := repository.NewRepositories(store)

	minioClient, err := config.NewMinIOClient(ctx, cfg)
	if err != nil {
		logger.Debug("MinIO unavailable, snapshots disabled", zap.Error(err))
		minioClient = nil
	}

	services, err := service.NewServices(repos, minioClient, cfg, logger)
	if err != nil {
		_ = closeStore()
		return fmt.Errorf("failed to build services: %w", err)
	}

	app.Ctx = ctx
	app.Cfg = cfg
	app.Logger = logger
	app.Repos = repos
	app.Services = services
	app.CloseStore = closeStore
	return nil
}
