package scrape

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dwillis/statement"
	"github.com/dwillis/statement/dates"
	"github.com/dwillis/statement/urls"
)

// ErrContainerNotFound reports a page with no item containers: a redesign,
// a block page, or a selector gone stale. It fails the source, not the
// batch.
var ErrContainerNotFound = errors.New("scrape: item container not found")

// embeddedDateFormats cover the timestamp shapes seen in client-rendered
// JSON payloads.
var embeddedDateFormats = []dates.Format{
	dates.ISOOffset,
	{Layout: "2006-01-02T15:04:05"},
}

// Extract pulls records from a fetched document according to the spec's
// pattern. Items missing a required element are skipped individually;
// structural failures return an error for the whole source.
func Extract(doc *goquery.Document, spec Spec, src statement.Source) ([]statement.Record, error) {
	switch spec.Kind {
	case KindEmbedded:
		return extractEmbedded(doc, spec, src)
	case KindSiblingDate:
		return extractSiblingDate(doc, spec, src)
	default:
		return extractList(doc.Selection, spec, src)
	}
}

// ExtractFragment parses the HTML fragment from an AJAX envelope and
// applies the list pattern to it.
func ExtractFragment(fragment string, spec Spec, src statement.Source) ([]statement.Record, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, ErrContainerNotFound
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return extractList(doc.Selection, spec, src)
}

// extractList handles the dominant shape: one selector yields the item
// containers, and link, title, and date are found inside each.
func extractList(root *goquery.Selection, spec Spec, src statement.Source) ([]statement.Record, error) {
	containers := root.Find(spec.Container)
	if containers.Length() == 0 {
		return nil, ErrContainerNotFound
	}

	pageDate := queryParamDate(spec, src)

	var records []statement.Record
	containers.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if spec.MaxItems > 0 && len(records) >= spec.MaxItems {
			return false
		}

		link := item
		if spec.Link != SelfLink {
			linkSel := spec.Link
			if linkSel == "" {
				linkSel = "a"
			}
			link = item.Find(linkSel).First()
		}
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return true
		}

		title := strings.TrimSpace(link.Text())
		if spec.TitleFrom != "" {
			titleEl := item.Find(spec.TitleFrom).First()
			if titleEl.Length() == 0 {
				if !spec.TitleOptional {
					return true
				}
				title = ""
			} else {
				title = strings.TrimSpace(titleEl.Text())
			}
		}

		date := pageDate
		if spec.DateQueryParam == "" && spec.DateSelector != "" {
			var found bool
			date, found = itemDate(item, spec)
			if !found && spec.DateRequired {
				return true
			}
		}

		records = append(records, buildRecord(spec, src, resolveLink(spec, src, href), title, date))
		return true
	})

	return records, nil
}

// extractSiblingDate handles listings where the date is not inside the item
// container but a fixed number of sibling elements before it.
func extractSiblingDate(doc *goquery.Document, spec Spec, src statement.Source) ([]statement.Record, error) {
	containers := doc.Find(spec.Container)
	if containers.Length() == 0 {
		return nil, ErrContainerNotFound
	}

	formats := spec.DateFormats
	if override, ok := spec.DomainDateFormats[src.Domain]; ok {
		formats = override
	}

	var records []statement.Record
	containers.Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}

		prev := item
		for i := 0; i < spec.DateSiblings; i++ {
			prev = prev.Prev()
		}
		var date *time.Time
		if prev.Length() > 0 {
			date, _ = dates.Resolve(prev.Text(), formats)
		}

		title := strings.TrimSpace(item.Text())
		records = append(records, buildRecord(spec, src, resolveLink(spec, src, href), title, date))
	})

	return records, nil
}

// extractEmbedded reads the JSON payload a client-rendered page ships in a
// script element and walks the spec's key path to the post nodes. A missing
// key or malformed payload fails this source only.
func extractEmbedded(doc *goquery.Document, spec Spec, src statement.Source) ([]statement.Record, error) {
	script := doc.Find(spec.Container).First()
	if script.Length() == 0 {
		return nil, ErrContainerNotFound
	}

	var root any
	if err := json.Unmarshal([]byte(script.Text()), &root); err != nil {
		return nil, fmt.Errorf("failed to decode embedded payload: %w", err)
	}

	edges, err := walkPath(root, spec.EmbeddedPath)
	if err != nil {
		return nil, err
	}
	list, ok := edges.([]any)
	if !ok {
		return nil, fmt.Errorf("embedded path ends at %T, want a list", edges)
	}

	var records []statement.Record
	for _, edge := range list {
		node, err := walkPath(edge, []string{"node"})
		if err != nil {
			continue
		}
		fields, ok := node.(map[string]any)
		if !ok {
			continue
		}

		link, _ := fields["link"].(string)
		if strings.TrimSpace(link) == "" {
			continue
		}
		title, _ := fields["title"].(string)
		rawDate, _ := fields["date"].(string)
		date, _ := dates.Resolve(strings.ReplaceAll(rawDate, "Z", "+00:00"), embeddedDateFormats)

		records = append(records, buildRecord(spec, src, link, title, date))
	}

	return records, nil
}

// walkPath descends a decoded JSON value along the given segments. Numeric
// segments index arrays; everything else is a map key.
func walkPath(v any, path []string) (any, error) {
	for _, seg := range path {
		if idx, err := strconv.Atoi(seg); err == nil {
			list, ok := v.([]any)
			if !ok || idx < 0 || idx >= len(list) {
				return nil, fmt.Errorf("embedded path: no element %d", idx)
			}
			v = list[idx]
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("embedded path: %q is not an object key", seg)
		}
		child, ok := m[seg]
		if !ok {
			return nil, fmt.Errorf("embedded path: missing key %q", seg)
		}
		v = child
	}
	return v, nil
}

// itemDate locates and resolves the date element within an item container.
// The second return reports whether the element was present at all.
func itemDate(item *goquery.Selection, spec Spec) (*time.Time, bool) {
	el := item.Find(spec.DateSelector).First()
	if el.Length() == 0 {
		return nil, false
	}
	if spec.DateAttr != "" {
		if v, ok := el.Attr(spec.DateAttr); ok {
			if d, resolved := dates.Resolve(v, spec.DateFormats); resolved {
				return d, true
			}
		}
	}
	d, _ := dates.Resolve(el.Text(), spec.DateFormats)
	return d, true
}

// queryParamDate resolves a whole-page date from the listing URL's query
// string, for listings that carry their date as a request parameter.
func queryParamDate(spec Spec, src statement.Source) *time.Time {
	if spec.DateQueryParam == "" {
		return nil
	}
	u, err := url.Parse(src.URL)
	if err != nil {
		return nil
	}
	d, _ := dates.Resolve(u.Query().Get(spec.DateQueryParam), spec.DateFormats)
	return d
}

// resolveLink absolutizes an extracted href per the spec's link mode.
// Already-absolute hrefs pass through; listings sometimes link across
// domains and the record must keep the real target.
func resolveLink(spec Spec, src statement.Source, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	switch spec.LinkMode {
	case LinkDomain:
		return "https://" + src.Domain + href
	case LinkPrefix:
		return "https://" + src.Domain + spec.PathPrefix + href
	default:
		return urls.AbsoluteLink(src.URL, href)
	}
}

// buildRecord assembles the canonical record, applying any per-domain
// rewrite and deriving the domain from the release URL when the source
// descriptor does not pin one.
func buildRecord(spec Spec, src statement.Source, absURL, title string, date *time.Time) statement.Record {
	domain := src.Domain
	if domain == "" || spec.DomainFromLink {
		domain = urls.Domain(absURL)
	}
	source := src.URL
	if spec.SourceLabel != "" {
		source = spec.SourceLabel
	}

	if rw, ok := spec.Rewrites[src.Domain]; ok {
		if rw.Domain != "" {
			domain = rw.Domain
		}
		if rw.URLFrom != "" {
			absURL = strings.Replace(absURL, rw.URLFrom, rw.URLTo, 1)
		}
	}

	return statement.Record{
		Source: source,
		URL:    absURL,
		Title:  title,
		Date:   date,
		Domain: domain,
		Party:  spec.Party,
	}
}
