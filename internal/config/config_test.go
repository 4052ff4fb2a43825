package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firescrape/internal/config"
)

func TestLoad_MissingAPIKeyFails(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIRECRAWL_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-abc")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "fc-abc", cfg.API.Key)
	assert.Equal(t, "https://api.firecrawl.dev", cfg.API.URL)
	assert.True(t, cfg.Scrape.OnlyMainContent)
	assert.True(t, cfg.Scrape.BlockAds)
	assert.False(t, cfg.Links.IncludeSubdomains)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 250, cfg.Retry.BackoffInitialMs)
	assert.Equal(t, float64(1), cfg.RateLimit.RPS)
	assert.Equal(t, ".", cfg.Output.Dir)
}

func TestLoad_APIURLOverride(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-abc")
	t.Setenv("FIRECRAWL_API_URL", "http://localhost:3002")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3002", cfg.API.URL)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-abc")

	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := []byte(`
scrape:
  mobile: true
  country: AU
  languages: ["en-AU", "en"]
  actions:
    - type: wait
      milliseconds: 500
    - type: click
      selector: "#expand-all"
links:
  include_subdomains: true
  path_prefix: /docs
retry:
  max_retries: 5
`)
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Scrape.Mobile)
	assert.Equal(t, "AU", cfg.Scrape.Country)
	assert.Equal(t, []string{"en-AU", "en"}, cfg.Scrape.Languages)
	assert.True(t, cfg.Links.IncludeSubdomains)
	assert.Equal(t, "/docs", cfg.Links.PathPrefix)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, []config.ActionConfig{
		{Type: "wait", Milliseconds: 500},
		{Type: "click", Selector: "#expand-all"},
	}, cfg.Scrape.Actions)
}

func TestValidate_Bounds(t *testing.T) {
	t.Parallel()

	base := config.Config{
		API:   config.APIConfig{Key: "fc-abc", URL: "https://api.firecrawl.dev"},
		Retry: config.RetryConfig{MaxRetries: 3, BackoffInitialMs: 250, BackoffMaxMs: 5000},
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("NegativeRetries", func(t *testing.T) {
		cfg := base
		cfg.Retry.MaxRetries = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("BackoffMaxBelowInitial", func(t *testing.T) {
		cfg := base
		cfg.Retry.BackoffMaxMs = 100
		assert.Error(t, cfg.Validate())
	})

	t.Run("NegativeRPS", func(t *testing.T) {
		cfg := base
		cfg.RateLimit.RPS = -0.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("KnownActionType", func(t *testing.T) {
		cfg := base
		cfg.Scrape.Actions = []config.ActionConfig{{Type: "wait", Milliseconds: 100}}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownActionType", func(t *testing.T) {
		cfg := base
		cfg.Scrape.Actions = []config.ActionConfig{{Type: "hover"}}
		assert.Error(t, cfg.Validate())
	})
}
