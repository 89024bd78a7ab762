package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/hanstudy/ingest/pkg/config"
	"github.com/hanstudy/ingest/pkg/content"
	"github.com/hanstudy/ingest/pkg/feed"
	"github.com/hanstudy/ingest/pkg/health"
	"github.com/hanstudy/ingest/pkg/repository"
	"github.com/hanstudy/ingest/pkg/scheduler"
	"github.com/hanstudy/ingest/pkg/source"
	"github.com/hanstudy/ingest/server"
)

// Opts with all CLI options
type Opts struct {
	Config     string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen     string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DSN        string `long:"dsn" env:"DSN" description:"database connection string, overrides config"`
	RunOnStart bool   `long:"run-on-start" env:"RUN_ON_START" description:"poll all enabled sources on start"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting ingest version %s", revision)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is done or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}
	setupLog(opts.Debug, opts.NoColor, cfg.Server.AdminPassword, cfg.Search.ClientSecret)

	registry, err := source.NewRegistry(cfg.Sources)
	if err != nil {
		return fmt.Errorf("failed to make source registry: %w", err)
	}
	lgr.Printf("[INFO] %d sources configured, %d enabled", len(registry.All()), len(registry.Enabled()))
	if !cfg.SearchEnabled() {
		lgr.Printf("[INFO] search credentials not set, search sources will pull nothing")
	}

	extractor, err := content.NewExtractor(extractorConfig(cfg.Extraction))
	if err != nil {
		return fmt.Errorf("failed to make extractor: %w", err)
	}

	puller := feed.New(feed.Options{
		Bodies:          extractor,
		ProviderTimeout: cfg.Pull.ProviderTimeout,
		UserAgent:       cfg.Pull.UserAgent,
		RSSItemLimit:    cfg.Pull.RSSItemLimit,
		BodyWorkers:     cfg.Pull.BodyWorkers,
		SearchDisplay:   cfg.Pull.SearchDisplay,
		SearchQueries:   cfg.Pull.SearchQueries,
		ClientID:        cfg.Search.ClientID,
		ClientSecret:    cfg.Search.ClientSecret,
		WikiSampleSize:  cfg.Pull.WikiSampleSize,
		WikiMemberLimit: cfg.Pull.WikiMemberLimit,
		Usability:       content.Usability{MinChars: cfg.Extraction.UsableMinChars, MinSentences: cfg.Extraction.UsableMinSentences},
		MaxBodyChars:    cfg.Extraction.MaxBodyChars,
	})

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	tracker := health.NewTracker(repos.Health, registry, health.Config{
		DegradeThreshold: cfg.Health.DegradeThreshold,
		MaxAttempts:      cfg.Health.MaxAttempts,
	})

	poller := scheduler.NewPoller(scheduler.PollerParams{
		Registry: registry,
		Puller:   puller,
		Sink:     repos.Articles,
		Runs:     repos.Runs,
		Health:   tracker,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Registry:   registry,
		Poller:     poller,
		Authorizer: server.AdminAuthorizer{},
		RunOnStart: cfg.Schedule.RunOnStart || opts.RunOnStart,
	})
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.New(cfg, tracker, repos.Runs, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func extractorConfig(c config.ExtractionConfig) content.Config {
	markers := make([]content.HostMarker, 0, len(c.HostMarkers))
	for _, m := range c.HostMarkers {
		markers = append(markers, content.HostMarker{Host: m.Host, Pattern: m.Pattern})
	}
	return content.Config{
		Timeout:            c.Timeout,
		UserAgent:          c.UserAgent,
		MaxBodyChars:       c.MaxBodyChars,
		MinBodyChars:       c.MinBodyChars,
		UsableMinChars:     c.UsableMinChars,
		UsableMinSentences: c.UsableMinSentences,
		MarkerBefore:       c.MarkerBefore,
		MarkerAfter:        c.MarkerAfter,
		Readability:        c.ReadabilityEnabled(),
		HostMarkers:        markers,
	}
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
