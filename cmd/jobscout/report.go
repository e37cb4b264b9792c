package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/report"
)

var (
	reportOutput   string
	reportMinScore int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a Markdown report of promising and applied listings",
	Long: "Selects applied and decided listings plus new ones scoring at least report.min_score, " +
		"best first, and writes them to report.path. Use -o - for stdout.",
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output path (default: report.path from config)")
	reportCmd.Flags().IntVar(&reportMinScore, "min-score", -1, "minimum score for new listings (default: report.min_score from config)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logger := reportLogger(reportOutput)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	minScore := cfg.Report.MinScore
	if reportMinScore >= 0 {
		minScore = reportMinScore
	}
	path := cfg.Report.Path
	if reportOutput != "" {
		path = reportOutput
	}
	logger = reportLogger(path)

	all, err := loadListings(cfg, logger)
	if err != nil {
		logger.Error("failed to read store", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	if path == "-" {
		if err := report.Write(os.Stdout, all, minScore, now); err != nil {
			logger.Error("failed to write report", "error", err)
			os.Exit(1)
		}
		return nil
	}

	if err := report.WriteFile(path, all, minScore, now); err != nil {
		logger.Error("failed to write report", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("report written",
		"path", path,
		"listings", len(filter.Reportable(all, minScore)),
		"total", len(all),
	)
	return nil
}

// reportLogger moves logs to stderr when the report itself goes to stdout.
func reportLogger(path string) *slog.Logger {
	if path == "-" {
		return newLogger(os.Stderr, debug)
	}
	return setupLogger(debug)
}
