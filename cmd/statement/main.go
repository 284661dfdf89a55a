package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dwillis/statement"
	"github.com/dwillis/statement/batch"
	"github.com/dwillis/statement/config"
	"github.com/dwillis/statement/fetch"
	"github.com/dwillis/statement/scrape"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", getEnv("STATEMENT_CONFIG", ""), "Path to workload config file (STATEMENT_CONFIG)")
	adapter := flag.String("adapter", "", "Run a single adapter instead of the configured workload")
	page := flag.Int("page", 0, "Listing page to fetch with -adapter (defaults to the adapter's first page)")
	listAdapters := flag.Bool("list", false, "List registered adapter identifiers and exit")
	concurrency := flag.Int("concurrency", 0, "Maximum number of parallel source fetches (overrides config)")
	fetchTimeout := flag.Duration("fetch-timeout", 0, "Timeout per source fetch (overrides config)")

	flag.Parse()

	if *listAdapters {
		for _, id := range scrape.Adapters() {
			fmt.Println(id)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	batchConfig := cfg.Batch()
	if *concurrency > 0 {
		batchConfig.Concurrency = *concurrency
	}
	if *fetchTimeout > 0 {
		batchConfig.FetchTimeout = *fetchTimeout
	}

	runner := batch.NewRunner(fetch.NewClient(batchConfig.FetchTimeout), batchConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, runner, cfg, *adapter, *page)
	if err != nil {
		log.Fatalf("Failed to run batch: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, rec := range result.Successes {
		if err := encoder.Encode(rec); err != nil {
			log.Fatalf("Failed to encode record: %v", err)
		}
	}

	for _, f := range result.Failures {
		log.Printf("WARN: %s: %s (%s)", f.Source, f.Reason, f.Detail)
	}

	if len(result.Failures) > 0 && len(result.Successes) == 0 {
		os.Exit(1)
	}
}

// loadConfig resolves the config path and loads it. No file anywhere means
// an empty workload, which falls back to the full default scrape run.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg, nil
}

// run executes either the single-adapter request or the configured
// workload. An empty workload runs every registered adapter at its first
// page, matching a config-less invocation.
func run(ctx context.Context, runner *batch.Runner, cfg *config.Config, adapter string, page int) (*statement.BatchResult, error) {
	if adapter != "" {
		entry, ok := scrape.Lookup(adapter)
		if !ok {
			return nil, fmt.Errorf("unknown adapter %q", adapter)
		}
		if page < entry.FirstPage {
			page = entry.FirstPage
		}
		return runner.Scrapers(ctx, entry.SourcesForPage(page)), nil
	}

	scrapers, err := cfg.ScrapeSources()
	if err != nil {
		return nil, err
	}

	if len(cfg.Feeds) == 0 && len(scrapers) == 0 {
		log.Printf("INFO: no workload configured, running all registered adapters")
		return runner.DefaultScrapers(ctx), nil
	}

	start := time.Now()
	result := runner.Feeds(ctx, cfg.Feeds)

	scraped := runner.Scrapers(ctx, scrapers)
	result.Successes = append(result.Successes, scraped.Successes...)
	result.Failures = append(result.Failures, scraped.Failures...)

	log.Printf("INFO: workload finished in %s", time.Since(start).Round(time.Millisecond))
	return result, nil
}
