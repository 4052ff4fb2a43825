// Package cmd wires the firescrape CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"firescrape/internal/clock/system"
	"firescrape/internal/config"
	"firescrape/internal/firecrawl"
	"firescrape/internal/id/uuid"
	"firescrape/internal/logging"
	"firescrape/internal/policy/ratelimit"
	"firescrape/internal/progress"
	"firescrape/internal/progress/sinks"
	"firescrape/internal/scraper"
	"firescrape/internal/writer"
)

// version is overridden at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	cfgFile           string
	outputDir         string
	includeSubdomains bool
	pathPrefix        string
	noProgress        bool
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "firescrape <start-url>",
		Short: "Scrape a documentation site into local markdown files.",
		Long: `firescrape walks a documentation site through the FireCrawl API,
starting from the given URL and following same-site links. Each page is
converted to markdown and written under a per-domain directory, prefixed
with YAML frontmatter recording the title, URL, and scrape time.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.cfgFile, "config", "", "config file (YAML)")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "directory the domain directory is created in")
	cmd.Flags().BoolVar(&flags.includeSubdomains, "include-subdomains", false, "follow links on subdomains of the start host")
	cmd.Flags().StringVar(&flags.pathPrefix, "path-prefix", "", "only follow links under this path prefix")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "disable the terminal progress bar")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// run loads configuration, assembles the scrape engine, and executes one
// run. Per-page failures are reported in the summary and do not produce a
// non-zero exit; configuration and cancellation errors do.
func run(ctx context.Context, flags *rootFlags, startURL string) error {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return err
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.includeSubdomains {
		cfg.Links.IncludeSubdomains = true
	}
	if flags.pathPrefix != "" {
		cfg.Links.PathPrefix = flags.pathPrefix
	}

	logger, err := logging.New(logging.Config{
		Development: cfg.Logging.Development,
		Dir:         cfg.Logging.Dir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID, err := uuid.New().NewID()
	if err != nil {
		return err
	}

	api, err := firecrawl.NewClient(firecrawl.Config{
		BaseURL: cfg.API.URL,
		APIKey:  cfg.API.Key,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		return err
	}

	policy, err := scraper.NewLinkPolicy(startURL, cfg.Links.IncludeSubdomains, cfg.Links.PathPrefix)
	if err != nil {
		return err
	}

	clk := system.New()
	sink, err := writer.NewMarkdownSink(writer.Config{BaseDir: cfg.Output.Dir}, startURL, clk, logger)
	if err != nil {
		return err
	}

	stats := sinks.NewStatsSink()
	hubSinks := []progress.Sink{sinks.NewLogSink(logger), stats}
	if !flags.noProgress {
		hubSinks = append(hubSinks, sinks.NewBarSink())
	}
	hub := progress.NewHub(logger, hubSinks...)

	engine, err := scraper.NewEngine(scraper.Params{
		Client: scraper.NewFirecrawlClient(api, firecrawl.ScrapeRequest{
			OnlyMainContent:     cfg.Scrape.OnlyMainContent,
			IncludeTags:         cfg.Scrape.IncludeTags,
			ExcludeTags:         cfg.Scrape.ExcludeTags,
			Headers:             cfg.Scrape.Headers,
			WaitFor:             cfg.Scrape.WaitForMs,
			Mobile:              cfg.Scrape.Mobile,
			SkipTLSVerification: cfg.Scrape.SkipTLSVerification,
			Timeout:             cfg.Scrape.TimeoutMs,
			RemoveBase64Images:  cfg.Scrape.RemoveBase64Images,
			BlockAds:            cfg.Scrape.BlockAds,
			Location:            scrapeLocation(cfg.Scrape),
			Actions:             scrapeActions(cfg.Scrape.Actions),
		}),
		Sink:   sink,
		Policy: policy,
		Retry: scraper.NewBackoffPolicy(
			cfg.Retry.MaxRetries+1,
			time.Duration(cfg.Retry.BackoffInitialMs)*time.Millisecond,
			time.Duration(cfg.Retry.BackoffMaxMs)*time.Millisecond,
		),
		Limiter: ratelimit.New(ratelimit.Config{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst}),
		Clock:   clk,
		Hub:     hub,
		Logger:  logger,
		RunID:   runID,
	})
	if err != nil {
		return err
	}

	summary, runErr := engine.Run(ctx, startURL)
	if err := hub.Close(context.Background()); err != nil {
		logger.Warn("closing progress sinks", zap.Error(err))
	}

	printSummary(sink.Root(), summary, stats.Totals())
	return runErr
}

// printSummary writes the end-of-run report to stdout.
func printSummary(root string, summary scraper.Summary, totals sinks.Totals) {
	fmt.Printf("\nScrape finished in %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Printf("  written: %d\n", summary.Written)
	fmt.Printf("  failed:  %d\n", summary.Failed)
	if totals.Retries > 0 {
		fmt.Printf("  retries: %d\n", totals.Retries)
	}
	fmt.Printf("  output:  %s\n", root)
}

func scrapeLocation(cfg config.ScrapeConfig) *firecrawl.Location {
	if cfg.Country == "" && len(cfg.Languages) == 0 {
		return nil
	}
	return &firecrawl.Location{Country: cfg.Country, Languages: cfg.Languages}
}

func scrapeActions(actions []config.ActionConfig) []firecrawl.Action {
	if len(actions) == 0 {
		return nil
	}
	out := make([]firecrawl.Action, 0, len(actions))
	for _, a := range actions {
		out = append(out, firecrawl.Action{
			Type:         a.Type,
			Milliseconds: a.Milliseconds,
			Selector:     a.Selector,
			Text:         a.Text,
			Key:          a.Key,
			Pixels:       a.Pixels,
			Script:       a.Script,
		})
	}
	return out
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
