// Package dates resolves the raw date strings found on press release
// listings. Every site formats dates differently, and many switch formats
// between redesigns, so each adapter carries an ordered list of candidate
// formats that is tried until one parses.
package dates

import (
	"strings"
	"time"
)

// Format is one entry in a resolution chain: a Go time layout plus an
// optional pre-normalization step applied to the text before parsing.
type Format struct {
	Layout string
	// DotsToSlashes rewrites "04.15.23" to "04/15/23" before applying a
	// slash-based layout. Some Senate sites render dotted dates that are
	// otherwise identical to their slashed variants.
	DotsToSlashes bool
}

// Layouts shared across the adapter tables.
var (
	ShortDotted = Format{Layout: "01.02.06"}
	ShortSlash  = Format{Layout: "01/02/06"}
	LongMonth   = Format{Layout: "January 2, 2006"}
	ISODate     = Format{Layout: "2006-01-02"}
	ISOOffset   = Format{Layout: "2006-01-02T15:04:05Z07:00"}
	// DottedAsSlash handles sites that render dotted dates but are
	// otherwise month/day/year short form.
	DottedAsSlash = Format{Layout: "01/02/06", DotsToSlashes: true}
)

// Resolve tries each format in order against text and returns the first
// date that parses, truncated to day precision in UTC. It never fails hard:
// empty or unparseable text yields (nil, false), which callers treat as an
// unknown date rather than an error.
func Resolve(text string, formats []Format) (*time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	for _, f := range formats {
		candidate := text
		if f.DotsToSlashes {
			candidate = strings.ReplaceAll(candidate, ".", "/")
		}

		t, err := time.Parse(f.Layout, candidate)
		if err != nil {
			continue
		}

		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day, true
	}

	return nil, false
}
