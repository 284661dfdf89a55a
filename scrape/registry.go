package scrape

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dwillis/statement"
)

// PageTemplate expands into one source descriptor per page. URLFormat takes
// the page number as its single verb. Grouped adapters carry one template
// per domain; each expands to an independent source so a failing domain
// cannot abort its siblings.
type PageTemplate struct {
	URLFormat string
	Domain    string
}

// Source builds the descriptor for one page of this template. Templates
// without a page verb (unpaginated listings) expand to the same URL for
// every page.
func (t PageTemplate) Source(adapter string, page int) statement.Source {
	pageURL := t.URLFormat
	if strings.Contains(pageURL, "%d") {
		pageURL = fmt.Sprintf(pageURL, page)
	}
	return statement.ScrapeSource(adapter, pageURL, t.Domain, page)
}

// Entry binds an adapter identifier to its spec and default source list.
type Entry struct {
	ID        string
	Spec      Spec
	Templates []PageTemplate
	// FirstPage is the page number the site's listing starts at. Most
	// sites are 1-based; a few Drupal sites count from zero.
	FirstPage int
}

// SourcesForPage expands the entry's templates for the given page.
func (e Entry) SourcesForPage(page int) []statement.Source {
	sources := make([]statement.Source, 0, len(e.Templates))
	for _, t := range e.Templates {
		sources = append(sources, t.Source(e.ID, page))
	}
	return sources
}

var registry = make(map[string]Entry)

// Register installs an adapter spec under an identifier. Registering the
// same identifier twice is a programming error.
func Register(id string, spec Spec, firstPage int, templates ...PageTemplate) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("scrape: adapter %q registered twice", id))
	}
	registry[id] = Entry{ID: id, Spec: spec, Templates: templates, FirstPage: firstPage}
}

// Lookup returns the entry for an adapter identifier.
func Lookup(id string) (Entry, bool) {
	e, ok := registry[id]
	return e, ok
}

// Adapters lists the registered adapter identifiers in sorted order.
func Adapters() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultSources expands every registered adapter at its first page. The
// result is the full default scrape workload, ordered by adapter ID.
func DefaultSources() []statement.Source {
	var sources []statement.Source
	for _, id := range Adapters() {
		e := registry[id]
		sources = append(sources, e.SourcesForPage(e.FirstPage)...)
	}
	return sources
}
