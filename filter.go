package statement

import "net/url"

// genericPaths are listing-root paths that show up in extracted links when a
// navigation element is captured as if it were a release. Records pointing
// at them are artifacts, not press releases.
var genericPaths = map[string]bool{
	"/news":  true,
	"/news/": true,
}

// RemoveGenericURLs drops malformed and navigation-artifact records: any
// record with an empty URL, an unparseable URL, or a URL whose path is a
// known generic listing root. Filtering is idempotent.
func RemoveGenericURLs(records []Record) []Record {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if r.URL == "" {
			continue
		}
		u, err := url.Parse(r.URL)
		if err != nil {
			continue
		}
		if genericPaths[u.Path] {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
