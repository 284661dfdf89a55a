// Package scrape extracts press release records from member and committee
// listing pages. Every site reduces to one of four structural patterns; the
// differences between sites live in declarative Spec values held by the
// registry, so supporting a new site is a data change rather than new code.
package scrape

import (
	"github.com/dwillis/statement"
	"github.com/dwillis/statement/dates"
)

// Kind selects the extraction pattern a spec uses.
type Kind string

const (
	// KindList locates repeating item containers and reads link, title,
	// and date from inside each one. Most sites use this shape.
	KindList Kind = "list"
	// KindSiblingDate is KindList except the date element sits a fixed
	// number of sibling elements before the item container.
	KindSiblingDate Kind = "sibling-date"
	// KindAJAX fetches a JSON envelope whose payload is an HTML fragment,
	// then applies the list pattern to the fragment.
	KindAJAX Kind = "ajax"
	// KindEmbedded reads a JSON payload embedded in the page and walks a
	// fixed key path to the post list, using no DOM selectors for items.
	KindEmbedded Kind = "embedded"
)

// SelfLink marks specs whose item container is itself the anchor element.
const SelfLink = "self"

// LinkMode selects how an extracted href becomes an absolute URL.
type LinkMode string

const (
	// LinkResolve joins the href against the page URL with standard URL
	// resolution. Absolute hrefs pass through unchanged.
	LinkResolve LinkMode = "resolve"
	// LinkDomain prepends https://{source domain} to the href.
	LinkDomain LinkMode = "domain"
	// LinkPrefix prepends https://{source domain}{PathPrefix} to the href,
	// for sites whose hrefs are relative to a listing subdirectory.
	LinkPrefix LinkMode = "prefix"
)

// Rewrite swaps the record domain and URL for one source whose listing is
// served under a different hostname than its releases.
type Rewrite struct {
	Domain  string
	URLFrom string
	URLTo   string
}

// Spec is the data defining one adapter: where the items are, where the
// link, title, and date live inside (or beside) each item, which date
// formats to try, and how links become absolute URLs.
type Spec struct {
	Kind Kind

	// Container selects the repeating item element. For KindEmbedded it
	// selects the script element holding the JSON payload.
	Container string
	// Link selects the anchor within a container; empty means the first
	// anchor, and SelfLink means the container itself is the anchor.
	// TitleFrom selects the title element; empty means the link text is
	// the title. TitleOptional emits an empty title when the element is
	// missing instead of skipping the item.
	Link          string
	TitleFrom     string
	TitleOptional bool

	// Date location. DateSelector finds the element within the container;
	// DateAttr names an attribute to read before falling back to element
	// text. DateRequired skips items whose date element is missing rather
	// than emitting them with an unknown date. DateSiblings is the number
	// of sibling elements to walk back from the container (KindSiblingDate).
	// DateQueryParam reads one date for the whole page from the listing
	// URL's query string.
	DateSelector   string
	DateAttr       string
	DateRequired   bool
	DateSiblings   int
	DateQueryParam string

	DateFormats []dates.Format
	// DomainDateFormats overrides DateFormats for enumerated domains that
	// diverge from their siblings. The listed domains are the ones observed
	// to diverge, not a general rule.
	DomainDateFormats map[string][]dates.Format

	LinkMode   LinkMode
	PathPrefix string

	// DomainFromLink derives each record's domain from its release URL even
	// when the source descriptor pins one, for listings that aggregate links
	// across member sites.
	DomainFromLink bool

	// Rewrites is keyed by source domain.
	Rewrites map[string]Rewrite

	// MaxItems caps extraction per page; zero means unlimited.
	MaxItems int

	// Party marks committee specs whose output carries a caucus tag.
	Party statement.Party

	// SourceLabel replaces the source URL on emitted records, for adapters
	// whose fetch URL is an implementation detail (AJAX endpoints).
	SourceLabel string

	// KindAJAX: the envelope key holding the HTML fragment.
	ContentKey string

	// KindEmbedded: the key path from the JSON root to the list of post
	// nodes. Numeric segments index into arrays.
	EmbeddedPath []string
}
