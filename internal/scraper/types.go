// Package scraper implements the sequential page-scraping driver loop and
// the types shared by its collaborators.
package scraper

import "time"

// Page is one successfully scraped documentation page.
type Page struct {
	// URL is the canonical page URL, byte-exact as scraped.
	URL string
	// Title is the page title reported by the API.
	Title string
	// Markdown is the converted page body.
	Markdown string
	// Links are the raw URLs discovered on the page, possibly duplicated
	// and off-site; the link policy filters them.
	Links []string
	// StatusCode is the upstream HTTP status observed by the API.
	StatusCode int
}

// Summary reports the outcome of a finished run.
type Summary struct {
	Written  int
	Failed   int
	Duration time.Duration
}
