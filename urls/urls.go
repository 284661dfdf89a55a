// Package urls resolves the links found on listing pages and feeds into
// absolute URLs. Most sources follow standard relative resolution against
// the page they were fetched from; the handful that do not get explicit
// per-source overrides instead of conditionals scattered through shared
// extraction code.
package urls

import "net/url"

// Override replaces the standard resolution result for one source. It
// receives the source URL and the raw link and returns the absolute URL to
// use instead.
type Override func(sourceURL, link string) string

// Normalizer resolves relative links against a base URL, honoring
// registered per-source overrides.
type Normalizer struct {
	overrides map[string]Override
}

// NewNormalizer returns a normalizer with no overrides registered.
func NewNormalizer() *Normalizer {
	return &Normalizer{overrides: make(map[string]Override)}
}

// Register installs an override for links found under the exact source URL.
func (n *Normalizer) Register(sourceURL string, fn Override) {
	n.overrides[sourceURL] = fn
}

// Resolve returns the absolute URL for link as found on sourceURL. An
// override registered for sourceURL wins; otherwise standard URL-join
// semantics apply via AbsoluteLink.
func (n *Normalizer) Resolve(sourceURL, link string) string {
	if fn, ok := n.overrides[sourceURL]; ok {
		return fn(sourceURL, link)
	}
	return AbsoluteLink(sourceURL, link)
}

// AbsoluteLink resolves a possibly-relative link against a base URL. A link
// that already carries a scheme is returned unchanged. When either URL
// fails to parse the raw link is returned; extraction-level filtering
// catches the malformed result downstream.
func AbsoluteLink(base, link string) string {
	l, err := url.Parse(link)
	if err != nil {
		return link
	}
	if l.IsAbs() {
		return link
	}

	b, err := url.Parse(base)
	if err != nil {
		return link
	}
	return b.ResolveReference(l).String()
}

// Domain extracts the hostname from a URL, or "" if it cannot be parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
