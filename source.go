package statement

import "fmt"

// SourceKind distinguishes syndication feeds from scraped listing pages.
type SourceKind string

const (
	KindFeed   SourceKind = "feed"
	KindScrape SourceKind = "scrape"
)

// Source describes one unit of ingestion work: either a feed URL, or an
// (adapter, page URL, page number) triple for an HTML listing. Sources are
// immutable once constructed; the batch layer never mutates them.
type Source struct {
	Kind    SourceKind `json:"kind"`
	URL     string     `json:"url"`
	Adapter string     `json:"adapter,omitempty"`
	Domain  string     `json:"domain,omitempty"`
	Page    int        `json:"page,omitempty"`
}

// FeedSource builds a descriptor for an RSS or Atom feed URL.
func FeedSource(url string) Source {
	return Source{Kind: KindFeed, URL: url}
}

// ScrapeSource builds a descriptor for one page of an HTML listing handled
// by the named adapter. pageURL is the fully expanded listing URL for that
// page; domain is the hostname records from this source should carry.
func ScrapeSource(adapter, pageURL, domain string, page int) Source {
	return Source{
		Kind:    KindScrape,
		URL:     pageURL,
		Adapter: adapter,
		Domain:  domain,
		Page:    page,
	}
}

// String renders a source compactly for logs and failure summaries.
func (s Source) String() string {
	if s.Kind == KindScrape {
		return fmt.Sprintf("%s[%s] %s", s.Kind, s.Adapter, s.URL)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.URL)
}
