// Package batch runs a set of sources through the matching parser or
// adapter and partitions the outcomes into records and per-source failures.
// A failing source never aborts its siblings or the batch: the caller
// always receives a complete BatchResult.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dwillis/statement"
	"github.com/dwillis/statement/feed"
	"github.com/dwillis/statement/fetch"
	"github.com/dwillis/statement/scrape"
)

// Config holds batch processing knobs.
type Config struct {
	// Maximum number of sources fetched in parallel.
	Concurrency int
	// Timeout per source fetch. A timed-out fetch fails that source only.
	FetchTimeout time.Duration
}

// DefaultConfig returns the default batch configuration.
func DefaultConfig() *Config {
	return &Config{
		Concurrency:  5,
		FetchTimeout: fetch.DefaultTimeout,
	}
}

// Runner executes batches against a document fetcher.
type Runner struct {
	fetcher    fetch.Fetcher
	feedParser *feed.Parser
	config     *Config
}

// NewRunner creates a runner. A nil config selects DefaultConfig.
func NewRunner(fetcher fetch.Fetcher, config *Config) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = fetch.DefaultTimeout
	}
	return &Runner{
		fetcher:    fetcher,
		feedParser: feed.NewParser(),
		config:     config,
	}
}

// Feeds ingests a list of RSS/Atom feed URLs.
func (r *Runner) Feeds(ctx context.Context, urls []string) *statement.BatchResult {
	sources := make([]statement.Source, 0, len(urls))
	for _, u := range urls {
		sources = append(sources, statement.FeedSource(u))
	}
	return r.run(ctx, sources)
}

// Scrapers ingests a list of scrape source descriptors.
func (r *Runner) Scrapers(ctx context.Context, sources []statement.Source) *statement.BatchResult {
	return r.run(ctx, sources)
}

// DefaultScrapers ingests every registered adapter at its first page.
func (r *Runner) DefaultScrapers(ctx context.Context) *statement.BatchResult {
	return r.Scrapers(ctx, scrape.DefaultSources())
}

// outcome is one source's terminal state: records on success, a failure
// otherwise.
type outcome struct {
	records []statement.Record
	failure *statement.Failure
}

// run dispatches sources to a bounded worker pool and merges outcomes in
// source order. Cancellation stops dispatching new sources; in-flight
// fetches complete or time out on their own, and whatever accumulated is
// returned as a valid result.
func (r *Runner) run(ctx context.Context, sources []statement.Source) *statement.BatchResult {
	outcomes := make([]outcome, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.config.Concurrency)

dispatch:
	for i, src := range sources {
		// select chooses pseudo-randomly when both cases are ready, so a
		// cancelled context must be checked first or a source could still
		// dispatch after cancellation.
		if ctx.Err() != nil {
			log.Printf("INFO: batch cancelled, %d of %d sources dispatched", i, len(sources))
			break
		}
		select {
		case <-ctx.Done():
			log.Printf("INFO: batch cancelled, %d of %d sources dispatched", i, len(sources))
			break dispatch
		case sem <- struct{}{}:
			wg.Add(1)
			go func(i int, src statement.Source) {
				defer wg.Done()
				defer func() { <-sem }()
				outcomes[i] = r.processSource(ctx, src)
			}(i, src)
		}
	}

	wg.Wait()

	result := statement.NewBatchResult()
	for _, o := range outcomes {
		if o.failure != nil {
			result.Failures = append(result.Failures, *o.failure)
			continue
		}
		result.Successes = append(result.Successes, o.records...)
	}

	log.Printf("INFO: batch %s: %d records, %d failed sources",
		result.RunID, len(result.Successes), len(result.Failures))
	return result
}

// processSource takes one source to a terminal state. It never panics out:
// an extraction-level panic becomes an ExtractionFailed entry.
func (r *Runner) processSource(ctx context.Context, src statement.Source) (out outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("ERROR: source %s panicked: %v", src, rec)
			out = outcome{failure: failure(src, statement.ExtractionFailed, fmt.Sprintf("panic: %v", rec))}
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, r.config.FetchTimeout)
	defer cancel()

	var (
		records []statement.Record
		fail    *statement.Failure
	)
	if src.Kind == statement.KindFeed {
		records, fail = r.processFeed(fetchCtx, src)
	} else {
		records, fail = r.processScrape(fetchCtx, src)
	}
	if fail != nil {
		log.Printf("WARN: source %s failed: %s (%s)", src, fail.Reason, fail.Detail)
		return outcome{failure: fail}
	}

	return outcome{records: statement.RemoveGenericURLs(records)}
}

func (r *Runner) processFeed(ctx context.Context, src statement.Source) ([]statement.Record, *statement.Failure) {
	f, err := r.fetcher.Feed(ctx, src.URL)
	if err != nil {
		return nil, failure(src, classifyFetchError(err), err.Error())
	}
	return r.feedParser.Parse(f, src.URL), nil
}

func (r *Runner) processScrape(ctx context.Context, src statement.Source) ([]statement.Record, *statement.Failure) {
	entry, ok := scrape.Lookup(src.Adapter)
	if !ok {
		return nil, failure(src, statement.ExtractionFailed, fmt.Sprintf("unknown adapter %q", src.Adapter))
	}

	if entry.Spec.Kind == scrape.KindAJAX {
		return r.processAJAX(ctx, entry.Spec, src)
	}

	doc, err := r.fetcher.HTML(ctx, src.URL)
	if err != nil {
		return nil, failure(src, classifyFetchError(err), err.Error())
	}

	records, err := scrape.Extract(doc, entry.Spec, src)
	if err != nil {
		return nil, failure(src, statement.ExtractionFailed, err.Error())
	}
	return records, nil
}

// processAJAX fetches the JSON envelope an AJAX adapter points at and
// extracts from the HTML fragment inside it.
func (r *Runner) processAJAX(ctx context.Context, spec scrape.Spec, src statement.Source) ([]statement.Record, *statement.Failure) {
	var envelope map[string]any
	if err := r.fetcher.JSON(ctx, src.URL, &envelope); err != nil {
		return nil, failure(src, classifyFetchError(err), err.Error())
	}

	fragment, _ := envelope[spec.ContentKey].(string)
	records, err := scrape.ExtractFragment(fragment, spec, src)
	if err != nil {
		return nil, failure(src, statement.ExtractionFailed, err.Error())
	}
	return records, nil
}

func failure(src statement.Source, reason statement.FailureReason, detail string) *statement.Failure {
	return &statement.Failure{Source: src, Reason: reason, Detail: detail}
}

// classifyFetchError separates transport failures from documents that were
// retrieved but could not be parsed.
func classifyFetchError(err error) statement.FailureReason {
	if errors.Is(err, fetch.ErrParse) {
		return statement.ParseFailed
	}
	return statement.FetchFailed
}
