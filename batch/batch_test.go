package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwillis/statement"
	"github.com/dwillis/statement/fetch"
)

// stubFetcher serves canned documents keyed by URL. URLs in blocks hang
// until the request context expires, mimicking an unresponsive site.
type stubFetcher struct {
	htmlBody map[string]string
	feeds    map[string]*gofeed.Feed
	jsonBody map[string]map[string]any
	errs     map[string]error
	delays   map[string]time.Duration
	blocks   map[string]bool
}

func (s *stubFetcher) wait(ctx context.Context, url string) error {
	if s.blocks[url] {
		<-ctx.Done()
		return fmt.Errorf("failed to fetch URL: %w", ctx.Err())
	}
	if d := s.delays[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return fmt.Errorf("failed to fetch URL: %w", ctx.Err())
		}
	}
	return s.errs[url]
}

func (s *stubFetcher) HTML(ctx context.Context, url string) (*goquery.Document, error) {
	if err := s.wait(ctx, url); err != nil {
		return nil, err
	}
	body, ok := s.htmlBody[url]
	if !ok {
		return nil, fmt.Errorf("failed to fetch URL: no stub for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

func (s *stubFetcher) Feed(ctx context.Context, url string) (*gofeed.Feed, error) {
	if err := s.wait(ctx, url); err != nil {
		return nil, err
	}
	f, ok := s.feeds[url]
	if !ok {
		return nil, fmt.Errorf("failed to fetch URL: no stub for %s", url)
	}
	return f, nil
}

func (s *stubFetcher) JSON(ctx context.Context, url string, v any) error {
	if err := s.wait(ctx, url); err != nil {
		return err
	}
	envelope, ok := s.jsonBody[url]
	if !ok {
		return fmt.Errorf("failed to fetch URL: no stub for %s", url)
	}
	*(v.(*map[string]any)) = envelope
	return nil
}

func rssFeed(titles ...string) *gofeed.Feed {
	f := &gofeed.Feed{FeedType: "rss"}
	for _, title := range titles {
		f.Items = append(f.Items, &gofeed.Item{
			Title: title,
			Link:  "https://example.gov/press/" + strings.ToLower(title),
		})
	}
	return f
}

// crapoListing is a minimal page matching the crapo adapter's selectors.
const crapoListing = `<html><body>
<div class="ArticleBlock"><a href="/release/%s">%s</a><p>01.15.24</p></div>
</body></html>`

// TestFeedFailuresAreIsolated verifies that failing sources become failure
// entries without disturbing their siblings
func TestFeedFailuresAreIsolated(t *testing.T) {
	fetcher := &stubFetcher{
		feeds: map[string]*gofeed.Feed{
			"https://a.gov/rss": rssFeed("Alpha"),
			"https://c.gov/rss": rssFeed("Charlie"),
		},
		errs: map[string]error{
			"https://b.gov/rss": fmt.Errorf("failed to fetch URL: connection refused"),
			"https://d.gov/rss": fmt.Errorf("failed to fetch URL: connection refused"),
		},
	}

	result := NewRunner(fetcher, nil).Feeds(context.Background(),
		[]string{"https://a.gov/rss", "https://b.gov/rss", "https://c.gov/rss", "https://d.gov/rss"})

	require.NotNil(t, result)
	require.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, statement.FetchFailed, f.Reason)
	}

	require.Len(t, result.Successes, 2)
	assert.Equal(t, "Alpha", result.Successes[0].Title)
	assert.Equal(t, "Charlie", result.Successes[1].Title)
}

// TestParseFailureClassified verifies retrieved-but-unparseable documents
// are reported distinctly from transport failures
func TestParseFailureClassified(t *testing.T) {
	fetcher := &stubFetcher{
		errs: map[string]error{
			"https://a.gov/rss": fmt.Errorf("failed to parse feed: %w: unexpected EOF", fetch.ErrParse),
		},
	}

	result := NewRunner(fetcher, nil).Feeds(context.Background(), []string{"https://a.gov/rss"})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, statement.ParseFailed, result.Failures[0].Reason)
}

// TestMergeOrderFollowsSourceOrder verifies output order is stable no
// matter which source finishes first
func TestMergeOrderFollowsSourceOrder(t *testing.T) {
	fetcher := &stubFetcher{
		feeds: map[string]*gofeed.Feed{
			"https://a.gov/rss": rssFeed("Alpha"),
			"https://b.gov/rss": rssFeed("Bravo"),
			"https://c.gov/rss": rssFeed("Charlie"),
		},
		delays: map[string]time.Duration{
			"https://a.gov/rss": 60 * time.Millisecond,
			"https://b.gov/rss": 30 * time.Millisecond,
		},
	}

	result := NewRunner(fetcher, nil).Feeds(context.Background(),
		[]string{"https://a.gov/rss", "https://b.gov/rss", "https://c.gov/rss"})

	require.Len(t, result.Successes, 3)
	assert.Equal(t, "Alpha", result.Successes[0].Title)
	assert.Equal(t, "Bravo", result.Successes[1].Title)
	assert.Equal(t, "Charlie", result.Successes[2].Title)
}

// TestScrapeTimeoutFailsOnlyThatSource verifies a hung site exhausts its
// own fetch budget while its siblings deliver records
func TestScrapeTimeoutFailsOnlyThatSource(t *testing.T) {
	urlA := "https://a.senate.gov/press?page=1"
	urlB := "https://b.senate.gov/press?page=1"
	urlC := "https://c.senate.gov/press?page=1"

	fetcher := &stubFetcher{
		htmlBody: map[string]string{
			urlA: fmt.Sprintf(crapoListing, "a", "From A"),
			urlC: fmt.Sprintf(crapoListing, "c", "From C"),
		},
		blocks: map[string]bool{urlB: true},
	}

	runner := NewRunner(fetcher, &Config{Concurrency: 3, FetchTimeout: 50 * time.Millisecond})
	result := runner.Scrapers(context.Background(), []statement.Source{
		statement.ScrapeSource("crapo", urlA, "a.senate.gov", 1),
		statement.ScrapeSource("crapo", urlB, "b.senate.gov", 1),
		statement.ScrapeSource("crapo", urlC, "c.senate.gov", 1),
	})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, statement.FetchFailed, result.Failures[0].Reason)
	assert.Equal(t, urlB, result.Failures[0].Source.URL)

	require.Len(t, result.Successes, 2)
	assert.Equal(t, "From A", result.Successes[0].Title)
	assert.Equal(t, "From C", result.Successes[1].Title)
}

// TestCancelledContextReturnsValidResult verifies cancellation yields an
// empty result rather than an error or a hang
func TestCancelledContextReturnsValidResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{feeds: map[string]*gofeed.Feed{
		"https://a.gov/rss": rssFeed("Alpha"),
	}}

	result := NewRunner(fetcher, nil).Feeds(ctx, []string{"https://a.gov/rss"})

	require.NotNil(t, result)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())
	assert.Empty(t, result.Successes)
}

// TestUnknownAdapterFails verifies a descriptor naming no registered
// adapter is reported, not dropped
func TestUnknownAdapterFails(t *testing.T) {
	result := NewRunner(&stubFetcher{}, nil).Scrapers(context.Background(), []statement.Source{
		statement.ScrapeSource("no-such-adapter", "https://x.gov/press", "x.gov", 1),
	})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, statement.ExtractionFailed, result.Failures[0].Reason)
	assert.Contains(t, result.Failures[0].Detail, "no-such-adapter")
}

// TestPanicBecomesFailure verifies a panicking extraction is contained as
// a per-source failure
func TestPanicBecomesFailure(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*gofeed.Feed{
		"https://a.gov/rss": {FeedType: "rss", Items: []*gofeed.Item{nil}},
		"https://b.gov/rss": rssFeed("Bravo"),
	}}

	result := NewRunner(fetcher, nil).Feeds(context.Background(),
		[]string{"https://a.gov/rss", "https://b.gov/rss"})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, statement.ExtractionFailed, result.Failures[0].Reason)
	assert.Contains(t, result.Failures[0].Detail, "panic")

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "Bravo", result.Successes[0].Title)
}

// TestAJAXAdapterUsesEnvelope verifies AJAX sources are fetched as JSON
// and extracted from the embedded fragment
func TestAJAXAdapterUsesEnvelope(t *testing.T) {
	url := "https://www.marshall.senate.gov/wp-admin/admin-ajax.php?paged=1"
	fragment := `<div class="elementor-widget-wrap">
		<h4><a href="https://www.marshall.senate.gov/press/one">Marshall One</a></h4>
		<span class="elementor-post-info__item--type-date">January 15, 2024</span>
	</div>`

	fetcher := &stubFetcher{jsonBody: map[string]map[string]any{
		url: {"content": fragment},
	}}

	result := NewRunner(fetcher, nil).Scrapers(context.Background(), []statement.Source{
		statement.ScrapeSource("marshall", url, "www.marshall.senate.gov", 1),
	})

	require.Empty(t, result.Failures)
	require.Len(t, result.Successes, 1)
	rec := result.Successes[0]
	assert.Equal(t, "Marshall One", rec.Title)
	assert.Equal(t, "https://www.marshall.senate.gov/newsroom/press-releases", rec.Source)
	require.NotNil(t, rec.Date)
	assert.Equal(t, *statement.DateOf(2024, time.January, 15), *rec.Date)
}

// TestGenericURLsDropped verifies navigation links are filtered out of a
// source's successes
func TestGenericURLsDropped(t *testing.T) {
	f := &gofeed.Feed{FeedType: "rss", Items: []*gofeed.Item{
		{Title: "Nav", Link: "https://a.gov/news"},
		{Title: "Real", Link: "https://a.gov/news/real-release"},
	}}
	fetcher := &stubFetcher{feeds: map[string]*gofeed.Feed{"https://a.gov/rss": f}}

	result := NewRunner(fetcher, nil).Feeds(context.Background(), []string{"https://a.gov/rss"})

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "Real", result.Successes[0].Title)
}
