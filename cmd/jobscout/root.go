package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/adapter"
	"github.com/amishk599/jobscout/internal/ai"
	"github.com/amishk599/jobscout/internal/config"
	"github.com/amishk599/jobscout/internal/crawler"
	"github.com/amishk599/jobscout/internal/model"
	"github.com/amishk599/jobscout/internal/notifier"
	"github.com/amishk599/jobscout/internal/ratelimit"
	"github.com/amishk599/jobscout/internal/retry"
	"github.com/amishk599/jobscout/internal/secrets"
	"github.com/amishk599/jobscout/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Internship and research job scout",
	Long: "jobscout searches job boards for your keywords, scores every new listing against " +
		"your profile with an LLM, and keeps track of what you applied to.",
	// A bare `jobscout` performs one intake run.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads .env files, resolves the config path and parses it.
// Priority: explicit path arg > JOBSCOUT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadEnvFiles(".env.local", ".env"); err != nil {
		return nil, err
	}
	if path == "" {
		if env := os.Getenv("JOBSCOUT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	return newLogger(os.Stdout, dbg)
}

func newLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// silentLogger is used while a TUI owns the terminal.
func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildBoards creates every enabled board, each paced by a shared per-board limiter.
func buildBoards(cfg *config.Config, logger *slog.Logger) []model.Board {
	client := adapter.NewHTTPClient(cfg.Crawl.UserAgent, cfg.Crawl.AcceptLanguage)
	limiter := ratelimit.NewBoardLimiter(cfg.Crawl.RateLimit.PerSecond, cfg.Crawl.RateLimit.Burst)
	opts := adapter.Options{Location: cfg.CandidateLocation()}

	var boards []model.Board
	for _, name := range cfg.Sites {
		b, ok := adapter.New(name, client, opts, logger)
		if !ok {
			logger.Warn("unsupported board, skipping", "board", name)
			continue
		}
		boards = append(boards, ratelimit.NewRateLimitedBoard(b, limiter))
		logger.Debug("registered board", "board", name)
	}
	return boards
}

func buildCrawler(cfg *config.Config, logger *slog.Logger) *crawler.Crawler {
	boards := buildBoards(cfg, logger)
	logger.Info("crawler configured",
		"boards", len(boards),
		"timeout", cfg.Crawl.Timeout.String(),
		"concurrency", cfg.Crawl.Concurrency,
		"rate_per_second", cfg.Crawl.RateLimit.PerSecond,
	)
	return crawler.New(boards, cfg.Crawl.Timeout, cfg.Crawl.Concurrency, logger)
}

// setupScorer returns the configured scorer, or a NopScorer when ai.enabled is false.
// The API key falls back to the OS keychain when the config leaves it empty.
func setupScorer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (model.Scorer, error) {
	if !cfg.AI.Enabled {
		logger.Info("ai scoring disabled, listings are stored unscored")
		return ai.NewNopScorer(), nil
	}

	if err := cfg.ResolveAPIKey(secrets.GetAPIKey); err != nil {
		return nil, err
	}

	var provider ai.LLMProvider
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		httpClient := &http.Client{Timeout: cfg.AI.Timeout}
		provider = ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, httpClient)
	case config.ProviderGemini:
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		provider = ai.WithTimeout(gemini, cfg.AI.Timeout)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.AI.Provider)
	}

	provider = retry.NewRetryProvider(provider, cfg.AI.MaxRetries, cfg.AI.RetryDelay, logger)
	scorer, err := ai.NewFitScorer(provider, ai.FitAnalysisTemplate, cfg.Candidate, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("ai scoring enabled", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	return scorer, nil
}

// openStore opens the configured store for writing, holding its lock until Close.
func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	return store.Open(cfg.Store.Backend, cfg.Store.Path, logger)
}

// loadListings reads every stored listing without taking the store lock, so
// read-only commands work while the daemon is running.
func loadListings(cfg *config.Config, logger *slog.Logger) ([]model.Listing, error) {
	switch cfg.Store.Backend {
	case store.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.Store.Path, logger)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Load(), nil
	default:
		rows, err := store.ReadCSV(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("listing store read", "path", cfg.Store.Path, "rows", len(rows))
		return rows, nil
	}
}
