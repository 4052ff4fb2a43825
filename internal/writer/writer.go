// Package writer persists scraped pages as markdown files, mirroring the
// site's URL structure under a per-domain directory.
package writer

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"firescrape/internal/scraper"
)

const (
	dirMode  = 0o750
	fileMode = 0o600
)

// Config sets where a MarkdownSink writes.
type Config struct {
	// BaseDir is the directory the domain directory is created in.
	BaseDir string
}

// MarkdownSink writes pages beneath <BaseDir>/<domain dir>, one .md file
// per page, each prefixed with YAML frontmatter.
type MarkdownSink struct {
	root   string
	clock  scraper.Clock
	logger *zap.Logger
}

// NewMarkdownSink creates the domain directory for startURL and returns a
// sink writing into it.
func NewMarkdownSink(cfg Config, startURL string, clock scraper.Clock, logger *zap.Logger) (*MarkdownSink, error) {
	dir, err := DomainDir(startURL)
	if err != nil {
		return nil, err
	}
	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	root := filepath.Join(base, dir)
	if err := os.MkdirAll(root, dirMode); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", root, err)
	}
	return &MarkdownSink{root: root, clock: clock, logger: logger}, nil
}

// Root returns the domain directory pages are written under.
func (s *MarkdownSink) Root() string {
	return s.root
}

// WritePage renders page with frontmatter and writes it to the path derived
// from its URL. Existing files are overwritten. The write goes through a
// temporary file and a rename, so readers never see partial pages.
func (s *MarkdownSink) WritePage(ctx context.Context, page scraper.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := pagePath(page.URL)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return "", fmt.Errorf("create page dir: %w", err)
	}

	body, err := render(page, s.clock.Now())
	if err != nil {
		return "", err
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, fileMode); err != nil {
		return "", fmt.Errorf("write page %s: %w", target, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit page %s: %w", target, err)
	}

	s.logger.Debug("page written",
		zap.String("url", page.URL),
		zap.String("path", target),
		zap.Int("bytes", len(body)),
	)
	return target, nil
}

// DomainDir maps a URL's host to a filesystem-safe directory name, e.g.
// docs.example.com becomes docs_example_com.
func DomainDir(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	// docs.example.com -> docs_example_com
	var b strings.Builder
	b.Grow(len(host))
	for _, r := range host {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

// pagePath maps a page URL's path onto a relative .md file path. Each path
// segment becomes a directory, the last one a file; the site root becomes
// index.md. Queries and fragments do not contribute to the name.
func pagePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return "index.md", nil
	}

	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		seg = sanitize(seg)
		if seg == "" {
			seg = "_"
		}
		segments[i] = seg
	}
	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], ".md") + ".md"
	return filepath.Join(segments...), nil
}

// sanitize replaces every byte outside [a-zA-Z0-9._-] with an underscore.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
