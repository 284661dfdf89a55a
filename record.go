// Package statement defines the canonical record schema for congressional
// press release listings, the source descriptors the batch layer consumes,
// and the aggregated result shape it produces. Feeds and HTML pages from
// member and committee sites all converge on the Record type here.
package statement

import "time"

// Party tags committee press releases with the caucus that issued them.
// Member sources never carry a party.
type Party string

const (
	PartyMajority Party = "majority"
	PartyMinority Party = "minority"
)

// Record is a single normalized press release listing entry. URL is always
// absolute; Date is nil when no date could be resolved from the source
// markup. Field names are stable for downstream consumers: each record
// serializes as one JSON object.
type Record struct {
	Source string     `json:"source"`
	URL    string     `json:"url"`
	Title  string     `json:"title"`
	Date   *time.Time `json:"date,omitempty"`
	Domain string     `json:"domain"`
	Party  Party      `json:"party,omitempty"`
}

// DateOf is a convenience constructor for Record.Date values. The time is
// truncated to a calendar date in UTC, since listing pages only ever carry
// day precision.
func DateOf(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
