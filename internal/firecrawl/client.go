package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "https://api.firecrawl.dev"

const scrapePath = "/v1/scrape"

// maxErrorBodyBytes caps how much of an error response is read for messages.
const maxErrorBodyBytes = 4 << 10

// Config captures the parameters for the API client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client issues scrape requests against the FireCrawl API. One outbound
// call per Scrape; connection reuse is left to the underlying transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient builds a Client from cfg. The API key must be non-empty; the
// base URL falls back to DefaultBaseURL.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}, nil
}

// Scrape posts req to the scrape endpoint and decodes the response.
// Transport failures return *RequestError; non-2xx statuses and
// success=false bodies return *APIError.
func (c *Client) Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scrapePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build scrape request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{URL: req.URL, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var out ScrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}
	if !out.Success {
		msg := out.Data.Metadata.Error
		if msg == "" {
			msg = "scrape was not successful"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.logger.Debug("scrape completed",
		zap.String("url", req.URL),
		zap.Int("status", out.Data.Metadata.StatusCode),
		zap.Int("links", len(out.Data.Links)),
		zap.Duration("dur", time.Since(start)),
	)
	if out.Data.Warning != "" {
		c.logger.Warn("scrape warning", zap.String("url", req.URL), zap.String("warning", out.Data.Warning))
	}
	return &out, nil
}
