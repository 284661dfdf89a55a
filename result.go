package statement

import "github.com/google/uuid"

// FailureReason tags why a source produced no records.
type FailureReason string

const (
	// FetchFailed covers network errors, timeouts, and bad HTTP statuses.
	FetchFailed FailureReason = "fetch_failed"
	// ParseFailed covers documents that could not be parsed at all.
	ParseFailed FailureReason = "parse_failed"
	// ExtractionFailed covers structural failures inside an otherwise
	// parseable document, such as a missing top-level container or a
	// malformed embedded payload.
	ExtractionFailed FailureReason = "extraction_failed"
)

// Failure records one source that could not be processed, with enough
// context for the caller to retry it selectively.
type Failure struct {
	Source Source        `json:"source"`
	Reason FailureReason `json:"reason"`
	Detail string        `json:"detail,omitempty"`
}

// BatchResult partitions one batch run into usable records and the sources
// that failed. Successes preserve source order, then in-page order. A fresh
// result is built per run; nothing is cached between calls.
type BatchResult struct {
	RunID     uuid.UUID `json:"run_id"`
	Successes []Record  `json:"successes"`
	Failures  []Failure `json:"failures"`
}

// NewBatchResult allocates an empty result tagged with a fresh run ID.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		RunID:     uuid.New(),
		Successes: []Record{},
		Failures:  []Failure{},
	}
}
