package writer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"firescrape/internal/scraper"
	"firescrape/internal/writer"
)

// fixedClock always reports the same instant.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestSink(t *testing.T, startURL string) *writer.MarkdownSink {
	t.Helper()
	sink, err := writer.NewMarkdownSink(
		writer.Config{BaseDir: t.TempDir()},
		startURL,
		fixedClock{now: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		zaptest.NewLogger(t),
	)
	require.NoError(t, err)
	return sink
}

func TestDomainDir(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://docs.example.com/guide", "docs_example_com"},
		{"https://EXAMPLE.com", "example_com"},
		{"https://my-docs.example.com", "my_docs_example_com"},
	}
	for _, tc := range cases {
		got, err := writer.DomainDir(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := writer.DomainDir("not a url at all ://")
	assert.Error(t, err)
}

func TestWritePage_FrontmatterAndBody(t *testing.T) {
	t.Parallel()

	sink := newTestSink(t, "https://docs.example.com/")
	path, err := sink.WritePage(context.Background(), scraper.Page{
		URL:      "https://docs.example.com/guide",
		Title:    "Guide",
		Markdown: "# Guide\n\nHello.",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sink.Root(), "guide.md"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"title: Guide\n"+
		"url: https://docs.example.com/guide\n"+
		"scrapeDate: \"2025-03-01T12:30:00Z\"\n"+
		"---\n\n"+
		"# Guide\n\nHello.\n", string(body))
}

func TestWritePage_PathMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
		want string
	}{
		{"Root", "https://docs.example.com/", "index.md"},
		{"SingleSegment", "https://docs.example.com/guide", "guide.md"},
		{"Nested", "https://docs.example.com/api/v2/auth", filepath.Join("api", "v2", "auth.md")},
		{"QueryIgnored", "https://docs.example.com/search?q=x", "search.md"},
		{"UnsafeChars", "https://docs.example.com/a b$c", "a_b_c.md"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sink := newTestSink(t, "https://docs.example.com/")
			path, err := sink.WritePage(context.Background(), scraper.Page{
				URL:      tc.url,
				Title:    tc.name,
				Markdown: "body",
			})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(sink.Root(), tc.want), path)
			_, err = os.Stat(path)
			assert.NoError(t, err)
		})
	}
}

func TestWritePage_OverwritesExisting(t *testing.T) {
	t.Parallel()

	sink := newTestSink(t, "https://docs.example.com/")
	page := scraper.Page{URL: "https://docs.example.com/guide", Title: "Guide", Markdown: "first"}

	_, err := sink.WritePage(context.Background(), page)
	require.NoError(t, err)

	page.Markdown = "second"
	path, err := sink.WritePage(context.Background(), page)
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "second")
	assert.NotContains(t, string(body), "first")
}

func TestWritePage_CanceledContext(t *testing.T) {
	t.Parallel()

	sink := newTestSink(t, "https://docs.example.com/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sink.WritePage(ctx, scraper.Page{URL: "https://docs.example.com/guide"})
	assert.Error(t, err)
}
