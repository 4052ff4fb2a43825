// Package config loads and validates firescrape configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"firescrape/internal/firecrawl"
)

// Config captures all CLI configuration knobs loaded via Viper.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"`
	Links     LinksConfig     `mapstructure:"links"`
	Retry     RetryConfig     `mapstructure:"retry"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig holds FireCrawl credentials and endpoint.
type APIConfig struct {
	Key            string `mapstructure:"key"`
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ScrapeConfig mirrors the per-request options forwarded to the API.
type ScrapeConfig struct {
	OnlyMainContent     bool              `mapstructure:"only_main_content"`
	Mobile              bool              `mapstructure:"mobile"`
	BlockAds            bool              `mapstructure:"block_ads"`
	RemoveBase64Images  bool              `mapstructure:"remove_base64_images"`
	SkipTLSVerification bool              `mapstructure:"skip_tls_verification"`
	TimeoutMs           int               `mapstructure:"timeout_ms"`
	WaitForMs           int               `mapstructure:"wait_for_ms"`
	IncludeTags         []string          `mapstructure:"include_tags"`
	ExcludeTags         []string          `mapstructure:"exclude_tags"`
	Headers             map[string]string `mapstructure:"headers"`
	Country             string            `mapstructure:"country"`
	Languages           []string          `mapstructure:"languages"`
	Actions             []ActionConfig    `mapstructure:"actions"`
}

// ActionConfig is a browser step the API performs before extraction, in
// list order. Useful for docs sites that hide content behind clicks.
type ActionConfig struct {
	Type         string `mapstructure:"type"`
	Milliseconds int    `mapstructure:"milliseconds"`
	Selector     string `mapstructure:"selector"`
	Text         string `mapstructure:"text"`
	Key          string `mapstructure:"key"`
	Pixels       int    `mapstructure:"pixels"`
	Script       string `mapstructure:"script"`
}

// LinksConfig makes the same-site link discovery policy explicit.
type LinksConfig struct {
	IncludeSubdomains bool   `mapstructure:"include_subdomains"`
	PathPrefix        string `mapstructure:"path_prefix"`
}

// RetryConfig bounds per-page retries for transient failures.
type RetryConfig struct {
	MaxRetries       int `mapstructure:"max_retries"`
	BackoffInitialMs int `mapstructure:"backoff_initial_ms"`
	BackoffMaxMs     int `mapstructure:"backoff_max_ms"`
}

// RateLimitConfig paces outbound API calls.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// OutputConfig sets where domain directories are created.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features and file rotation.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Dir         string `mapstructure:"dir"`
}

// Load builds a Config from a .env file (if present), environment
// variables, and an optional config file.
func Load(path string) (Config, error) {
	// The API key conventionally lives in .env; missing files are fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FIRESCRAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The FireCrawl variables keep their well-known names.
	if err := v.BindEnv("api.key", "FIRECRAWL_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env: %w", err)
	}
	if err := v.BindEnv("api.url", "FIRECRAWL_API_URL"); err != nil {
		return Config{}, fmt.Errorf("bind api url env: %w", err)
	}

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "https://api.firecrawl.dev")
	v.SetDefault("api.timeout_seconds", 90)
	v.SetDefault("scrape.only_main_content", true)
	v.SetDefault("scrape.block_ads", true)
	v.SetDefault("scrape.remove_base64_images", true)
	v.SetDefault("scrape.timeout_ms", 30000)
	v.SetDefault("links.include_subdomains", false)
	v.SetDefault("links.path_prefix", "")
	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.backoff_initial_ms", 250)
	v.SetDefault("retry.backoff_max_ms", 5000)
	v.SetDefault("rate_limit.rps", 1)
	v.SetDefault("rate_limit.burst", 1)
	v.SetDefault("output.dir", ".")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.dir", "logs")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return fmt.Errorf("FIRECRAWL_API_KEY must be set")
	}
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api.url must not be empty")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be >= 0")
	}
	if c.Retry.BackoffInitialMs <= 0 {
		return fmt.Errorf("retry.backoff_initial_ms must be > 0")
	}
	if c.Retry.BackoffMaxMs < c.Retry.BackoffInitialMs {
		return fmt.Errorf("retry.backoff_max_ms must be >= retry.backoff_initial_ms")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must be >= 0")
	}
	for i, action := range c.Scrape.Actions {
		switch action.Type {
		case firecrawl.ActionWait, firecrawl.ActionScreenshot, firecrawl.ActionClick,
			firecrawl.ActionWrite, firecrawl.ActionPress, firecrawl.ActionScroll,
			firecrawl.ActionScrape, firecrawl.ActionExecute:
		default:
			return fmt.Errorf("scrape.actions[%d]: unknown action type %q", i, action.Type)
		}
	}
	return nil
}
