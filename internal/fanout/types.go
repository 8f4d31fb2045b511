// Package fanout implements the Evidence Fanout (C2): given a
// SearchStrategy, it produces a deduplicated, deterministically ordered
// list of EvidenceCandidate by running bounded-concurrency search and
// extraction workers.
package fanout

import "time"

// EvidenceCandidate is one raw, unscored piece of evidence. Created
// only by this package; immutable thereafter.
type EvidenceCandidate struct {
	Text          string
	SourceURL     string
	SourceDomain  string
	SourceTitle   string
	FoundViaQuery string
	RawRelevance  float64

	// Extraction metadata, carried for downstream quality/grading
	// assessment.
	Description string
	Author      string
	PublishDate string
}

// Defaults for fanout sizing and timeouts.
const (
	DefaultTopK              = 10
	DefaultPerRequestTimeout = 8 * time.Second
	DefaultFanoutDeadline    = 45 * time.Second
	MinWordsForPrimaryPath   = 50
	MaxExtractedChars        = 5000
	SnippetFallbackRelevance = 0.6
)

// searchHit pairs a raw search.Result with the query metadata needed
// for scoring and deterministic ordering.
type searchHit struct {
	title         string
	url           string
	snippet       string
	domain        string
	queryPriority float64
	position      int
	foundViaQuery string
}
