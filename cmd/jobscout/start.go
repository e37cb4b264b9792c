package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scouting daemon",
	Long:  "Runs an intake cycle every polling_interval; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.PollingInterval.String(),
		"keywords", len(cfg.Keywords),
		"sites", len(cfg.Sites),
		"store", cfg.Store.Path,
	)

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfg, st, logger)
	if err != nil {
		logger.Error("failed to set up pipeline", "error", err)
		os.Exit(1)
	}

	sched := scheduler.NewScheduler(p, cfg.Keywords, cfg.PollingInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
