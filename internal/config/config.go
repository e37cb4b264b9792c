package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobscout/internal/adapter"
)

// Config is the root configuration for jobscout.
type Config struct {
	PollingInterval time.Duration
	Keywords        []string
	Sites           []string
	Candidate       map[string]any // embedded verbatim in the scoring prompt
	Crawl           CrawlConfig
	Store           StoreConfig
	AI              AIConfig
	Notification    NotificationConfig
	Applications    ApplicationsConfig
	Report          ReportConfig
	Filters         FilterConfig
}

// CrawlConfig controls how job boards are fetched.
type CrawlConfig struct {
	Timeout        time.Duration // total budget for one crawl
	Concurrency    int           // max in-flight board searches
	UserAgent      string
	AcceptLanguage string
	RateLimit      RateLimitConfig
}

// RateLimitConfig paces requests to each board.
type RateLimitConfig struct {
	PerSecond float64 // zero disables limiting
	Burst     int
}

// StoreConfig selects the listing store backend.
type StoreConfig struct {
	Backend string // "csv" or "sqlite"
	Path    string
}

// AIConfig controls the relevance scorer.
type AIConfig struct {
	Enabled    bool
	Provider   string        // "gemini" or "openai"
	BaseURL    string        // openai only; defaults to https://api.openai.com/v1
	Model      string        // e.g. "gemini-2.5-flash" or "gpt-4o-mini"
	APIKey     string        // expanded from env var by Load; see ResolveAPIKey
	Timeout    time.Duration // per-request timeout
	MaxRetries int
	RetryDelay time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string // "log" or "slack"
	WebhookURL string // required if type is "slack"
	MinScore   int    // listings scoring at least this are notified
}

// ApplicationsConfig limits the apply command.
type ApplicationsConfig struct {
	MaxPerDay int
}

// ReportConfig controls the Markdown report.
type ReportConfig struct {
	MinScore int
	Path     string
}

// FilterConfig holds keyword and location filter settings applied before scoring.
type FilterConfig struct {
	TitleKeywords []string
	Locations     []string
}

// Provider and backend names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultCSVPath       = "jobs_database.csv"
	defaultSQLitePath    = "jobs.db"
	defaultReportPath    = "job_application_report.md"
	defaultMinScore      = 70
	slackWebhookPrefix   = "https://hooks.slack.com/"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
// Pointer fields distinguish "absent" from an explicit zero.
type rawConfig struct {
	PollingInterval string          `yaml:"polling_interval"`
	Keywords        []string        `yaml:"keywords"`
	Sites           []string        `yaml:"sites"`
	Candidate       map[string]any  `yaml:"candidate"`
	Crawl           rawCrawlConfig  `yaml:"crawl"`
	Store           rawStoreConfig  `yaml:"store"`
	AI              rawAIConfig     `yaml:"ai"`
	Notification    rawNotifyConfig `yaml:"notification"`
	Applications    rawApplyConfig  `yaml:"applications"`
	Report          rawReportConfig `yaml:"report"`
	Filters         rawFilterConfig `yaml:"filters"`
}

type rawCrawlConfig struct {
	Timeout        string `yaml:"timeout"`
	Concurrency    int    `yaml:"concurrency"`
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
	RateLimit      struct {
		PerSecond *float64 `yaml:"per_second"`
		Burst     int      `yaml:"burst"`
	} `yaml:"rate_limit"`
}

type rawStoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type rawAIConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	Provider   string `yaml:"provider"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Timeout    string `yaml:"timeout"`
	MaxRetries *int   `yaml:"max_retries"`
	RetryDelay string `yaml:"retry_delay"`
}

type rawNotifyConfig struct {
	Type       string `yaml:"type"`
	WebhookURL string `yaml:"webhook_url"`
	MinScore   *int   `yaml:"min_score"`
}

type rawApplyConfig struct {
	MaxPerDay *int `yaml:"max_per_day"`
}

type rawReportConfig struct {
	MinScore *int   `yaml:"min_score"`
	Path     string `yaml:"path"`
}

type rawFilterConfig struct {
	TitleKeywords []string `yaml:"title_keywords"`
	Locations     []string `yaml:"locations"`
}

// LoadEnvFiles loads KEY=value pairs from the given dotenv files, skipping
// files that do not exist. Variables already in the environment win, so list
// the most specific file first.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 24 * time.Hour
	if raw.PollingInterval != "" {
		if interval, err = time.ParseDuration(raw.PollingInterval); err != nil {
			return nil, fmt.Errorf("parse polling_interval %q: %w", raw.PollingInterval, err)
		}
	}

	crawlTimeout := 120 * time.Second
	if raw.Crawl.Timeout != "" {
		if crawlTimeout, err = time.ParseDuration(raw.Crawl.Timeout); err != nil {
			return nil, fmt.Errorf("parse crawl.timeout %q: %w", raw.Crawl.Timeout, err)
		}
	}

	aiTimeout := 60 * time.Second
	if raw.AI.Timeout != "" {
		if aiTimeout, err = time.ParseDuration(raw.AI.Timeout); err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	retryDelay := 2 * time.Second
	if raw.AI.RetryDelay != "" {
		if retryDelay, err = time.ParseDuration(raw.AI.RetryDelay); err != nil {
			return nil, fmt.Errorf("parse ai.retry_delay %q: %w", raw.AI.RetryDelay, err)
		}
	}

	sites := raw.Sites
	if len(sites) == 0 {
		sites = adapter.DefaultBoards
	}

	cfg := &Config{
		PollingInterval: interval,
		Keywords:        trimAll(raw.Keywords),
		Sites:           sites,
		Candidate:       raw.Candidate,
		Crawl: CrawlConfig{
			Timeout:        crawlTimeout,
			Concurrency:    orDefault(raw.Crawl.Concurrency, 16),
			UserAgent:      raw.Crawl.UserAgent,
			AcceptLanguage: raw.Crawl.AcceptLanguage,
			RateLimit: RateLimitConfig{
				PerSecond: 2,
				Burst:     orDefault(raw.Crawl.RateLimit.Burst, 2),
			},
		},
		Store: StoreConfig{
			Backend: strings.ToLower(raw.Store.Backend),
			Path:    raw.Store.Path,
		},
		AI: AIConfig{
			Enabled:    raw.AI.Enabled == nil || *raw.AI.Enabled,
			Provider:   strings.ToLower(raw.AI.Provider),
			BaseURL:    raw.AI.BaseURL,
			Model:      raw.AI.Model,
			APIKey:     raw.AI.APIKey,
			Timeout:    aiTimeout,
			MaxRetries: intOr(raw.AI.MaxRetries, 2),
			RetryDelay: retryDelay,
		},
		Notification: NotificationConfig{
			Type:       raw.Notification.Type,
			WebhookURL: raw.Notification.WebhookURL,
			MinScore:   intOr(raw.Notification.MinScore, defaultMinScore),
		},
		Applications: ApplicationsConfig{
			MaxPerDay: intOr(raw.Applications.MaxPerDay, 5),
		},
		Report: ReportConfig{
			MinScore: intOr(raw.Report.MinScore, defaultMinScore),
			Path:     raw.Report.Path,
		},
		Filters: FilterConfig{
			TitleKeywords: raw.Filters.TitleKeywords,
			Locations:     raw.Filters.Locations,
		},
	}
	if raw.Crawl.RateLimit.PerSecond != nil {
		cfg.Crawl.RateLimit.PerSecond = *raw.Crawl.RateLimit.PerSecond
	}
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendCSV
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultCSVPath
		if cfg.Store.Backend == BackendSQLite {
			cfg.Store.Path = defaultSQLitePath
		}
	}

	if cfg.AI.Provider == "" {
		cfg.AI.Provider = ProviderGemini
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultGeminiModel
		if cfg.AI.Provider == ProviderOpenAI {
			cfg.AI.Model = defaultOpenAIModel
		}
	}
	if cfg.AI.Provider == ProviderOpenAI && cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = defaultOpenAIBaseURL
	}

	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "log"
	}
	if cfg.Report.Path == "" {
		cfg.Report.Path = defaultReportPath
	}
}

func validate(cfg *Config) error {
	if cfg.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be positive, got %v", cfg.PollingInterval)
	}
	if len(cfg.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}

	if len(cfg.Sites) == 0 {
		return fmt.Errorf("at least one site must be enabled")
	}
	for _, s := range cfg.Sites {
		if !adapter.IsKnown(s) {
			return fmt.Errorf("sites: unknown board %q (known: %s)", s, strings.Join(adapter.KnownBoards, ", "))
		}
	}

	if cfg.Crawl.Timeout <= 0 {
		return fmt.Errorf("crawl.timeout must be positive, got %v", cfg.Crawl.Timeout)
	}
	if cfg.Crawl.Concurrency < 1 {
		return fmt.Errorf("crawl.concurrency must be at least 1, got %d", cfg.Crawl.Concurrency)
	}
	if cfg.Crawl.RateLimit.PerSecond < 0 {
		return fmt.Errorf("crawl.rate_limit.per_second must not be negative, got %v", cfg.Crawl.RateLimit.PerSecond)
	}

	switch cfg.Store.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendCSV, BackendSQLite, cfg.Store.Backend)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookPrefix)
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	if cfg.Applications.MaxPerDay < 0 {
		return fmt.Errorf("applications.max_per_day must not be negative, got %d", cfg.Applications.MaxPerDay)
	}

	if cfg.AI.Enabled {
		switch cfg.AI.Provider {
		case ProviderGemini, ProviderOpenAI:
		default:
			return fmt.Errorf("ai.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.AI.Provider)
		}
		if cfg.AI.Timeout <= 0 {
			return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
		}
		if cfg.AI.MaxRetries < 0 {
			return fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
		}
		if cfg.AI.RetryDelay <= 0 {
			return fmt.Errorf("ai.retry_delay must be positive, got %v", cfg.AI.RetryDelay)
		}
		if len(cfg.Candidate) == 0 {
			return fmt.Errorf("candidate profile is required when ai.enabled is true")
		}
	}

	return nil
}

// ResolveAPIKey fills AI.APIKey from lookup when scoring is enabled and the
// config did not provide a key. lookup receives the provider name.
func (c *Config) ResolveAPIKey(lookup func(provider string) (string, error)) error {
	if !c.AI.Enabled || c.AI.APIKey != "" {
		return nil
	}
	key, err := lookup(c.AI.Provider)
	if err != nil || key == "" {
		msg := "ai.api_key is required when ai.enabled is true (set it in the config, the environment, or with `jobscout secrets set`)"
		if err != nil {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return errors.New(msg)
	}
	c.AI.APIKey = key
	return nil
}

// CandidateLocation returns candidate.location, or "" when unset.
func (c *Config) CandidateLocation() string {
	loc, _ := c.Candidate["location"].(string)
	return strings.TrimSpace(loc)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
