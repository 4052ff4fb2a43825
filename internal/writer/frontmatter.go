package writer

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"firescrape/internal/scraper"
)

// frontmatter is the YAML block prefixed to every written page.
type frontmatter struct {
	Title      string `yaml:"title"`
	URL        string `yaml:"url"`
	ScrapeDate string `yaml:"scrapeDate"`
}

// render produces the full file contents: a fenced YAML frontmatter block
// followed by the page markdown.
func render(page scraper.Page, now time.Time) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:      page.Title,
		URL:        page.URL,
		ScrapeDate: now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(meta) + len(page.Markdown) + 16)
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(page.Markdown)
	if len(page.Markdown) > 0 && page.Markdown[len(page.Markdown)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
