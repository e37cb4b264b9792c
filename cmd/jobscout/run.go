package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/config"
	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/model"
	"github.com/amishk599/jobscout/internal/pipeline"
	"github.com/amishk599/jobscout/internal/store"
)

var (
	dryRun      bool
	runKeywords []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search all boards once, score and store new listings",
	Long: "One intake run: searches every enabled board for every keyword, scores listings not seen " +
		"before, stores them and notifies about strong matches.",
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "crawl and score, but do not write the store")
	runCmd.Flags().StringSliceVarP(&runKeywords, "keyword", "k", nil, "search keyword (repeatable, overrides the config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	keywords := cfg.Keywords
	if len(runKeywords) > 0 {
		keywords = runKeywords
	}
	logger.Info("config loaded",
		"keywords", len(keywords),
		"sites", cfg.Sites,
		"store", cfg.Store.Backend,
		"ai", cfg.AI.Enabled,
	)

	var listingStore model.ListingStore
	if dryRun {
		logger.Info("dry-run mode enabled, nothing will be stored")
		listingStore = store.NewNopStore()
	} else {
		st, err := openStore(cfg, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer st.Close()
		listingStore = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfg, listingStore, logger)
	if err != nil {
		logger.Error("failed to set up pipeline", "error", err)
		os.Exit(1)
	}

	added, err := p.Run(ctx, keywords)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("run finished", "new_listings", added)
	return nil
}

// buildPipeline wires the crawler, pre-scoring filter, scorer and notifier around listingStore.
func buildPipeline(ctx context.Context, cfg *config.Config, listingStore model.ListingStore, logger *slog.Logger) (*pipeline.Pipeline, error) {
	scorer, err := setupScorer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	n := setupNotifier(cfg, httpClient, logger)

	var listingFilter model.ListingFilter
	if len(cfg.Filters.TitleKeywords) > 0 || len(cfg.Filters.Locations) > 0 {
		listingFilter = filter.NewTitleAndLocationFilter(cfg.Filters.TitleKeywords, cfg.Filters.Locations)
		logger.Info("pre-scoring filter enabled",
			"title_keywords", len(cfg.Filters.TitleKeywords),
			"locations", len(cfg.Filters.Locations),
		)
	}

	return pipeline.New(
		buildCrawler(cfg, logger),
		listingFilter,
		listingStore,
		scorer,
		n,
		cfg.Notification.MinScore,
		logger,
	), nil
}
