package scraper

import (
	"context"
	"fmt"

	"firescrape/internal/firecrawl"
)

// FirecrawlClient adapts the FireCrawl API client to the Client interface.
// Every page is requested in markdown plus links form, so the driver can
// write the page and keep discovering in one call.
type FirecrawlClient struct {
	api  *firecrawl.Client
	base firecrawl.ScrapeRequest
}

// NewFirecrawlClient wraps api. base carries the per-request options shared
// by all pages of a run; its URL and Formats fields are overwritten per call.
func NewFirecrawlClient(api *firecrawl.Client, base firecrawl.ScrapeRequest) *FirecrawlClient {
	return &FirecrawlClient{api: api, base: base}
}

// ScrapePage fetches url and maps the API response onto a Page. The page
// URL prefers the API's reported source URL, which reflects redirects.
func (c *FirecrawlClient) ScrapePage(ctx context.Context, url string) (Page, error) {
	req := c.base
	req.URL = url
	req.Formats = []string{firecrawl.FormatMarkdown, firecrawl.FormatLinks}

	resp, err := c.api.Scrape(ctx, req)
	if err != nil {
		return Page{}, fmt.Errorf("scrape %s: %w", url, err)
	}

	pageURL := resp.Data.Metadata.SourceURL
	if pageURL == "" {
		pageURL = url
	}
	return Page{
		URL:        pageURL,
		Title:      resp.Data.Metadata.Title,
		Markdown:   resp.Data.Markdown,
		Links:      resp.Data.Links,
		StatusCode: resp.Data.Metadata.StatusCode,
	}, nil
}
