package strategy

import (
	"fmt"
)

// methodologyPhrases is the fixed per-tag vocabulary query synthesis
// draws from.
var methodologyPhrases = map[MethodologyTag][]string{
	PeerReviewed:        {"peer reviewed study", "peer-reviewed research", "peer reviewed analysis"},
	SystematicReview:    {"systematic review", "meta-analysis", "systematic review meta-analysis"},
	GovernmentOfficial:  {"official report", "government data", "official statistics"},
	Experimental:        {"randomized controlled trial", "clinical trial results", "controlled experiment"},
	Observational:       {"observational study", "cohort study", "longitudinal study"},
	IndependentResearch: {"independent research", "investigative report", "independent analysis"},
}

// counterPhrases seeds the required counter-evidence queries.
var counterPhrases = []string{"debunked", "myth", "false", "fact check"}

// Generator builds SearchStrategy values for claims, using a
// configurable IFCN targeting-token deny list.
type Generator struct {
	ifcn *ifcnChecker

	methodologyFirst bool
}

// NewGenerator builds a methodology-first Generator. targetingTokens
// may be nil to use DefaultTargetingTokens.
func NewGenerator(targetingTokens []string) *Generator {
	return &Generator{ifcn: newIFCNChecker(targetingTokens), methodologyFirst: true}
}

// NewFallbackGenerator builds a Generator with methodology-first
// enrichment disabled: every claim gets a single exact-match query.
// This is the strategy path selected when the methodology-first
// generator is switched off by configuration.
func NewFallbackGenerator(targetingTokens []string) *Generator {
	return &Generator{ifcn: newIFCNChecker(targetingTokens)}
}

// Generate turns claimText into a SearchStrategy.
func (g *Generator) Generate(claimText string) (*SearchStrategy, error) {
	if IsNonClaim(claimText) {
		return g.minimalStrategy(claimText), nil
	}
	if !g.methodologyFirst {
		return g.fallbackStrategy(claimText), nil
	}

	audit := []string{}
	classification := ClassifyDomain(claimText)
	audit = append(audit, fmt.Sprintf("domain classification: %s", classification.Reasoning))

	tags := MethodologyTagsFor(classification.Domain)
	audit = append(audit, fmt.Sprintf("methodology tags selected for domain %q: %v", classification.Domain, tags))

	queries := make([]Query, 0, MaxQueries)

	// The original-claim exact-match query is the anchor: highest
	// priority, never dropped by the hard cap.
	anchorTag := IndependentResearch
	if len(tags) > 0 {
		anchorTag = tags[0]
	}
	anchor := Query{
		Text:            claimText,
		MethodologyTag:  anchorTag,
		Priority:        1.0,
		MaxResults:      DefaultMaxResultsPerQuery,
		PerQueryTimeout: DefaultPerQueryTimeout,
		ContextTags:     []string{"exact_match"},
	}
	queries = append(queries, anchor)
	audit = append(audit, "anchor query: original claim text, exact match, priority 1.0")

	for _, tag := range tags {
		phrases := methodologyPhrases[tag]
		limit := 3
		if len(phrases) < limit {
			limit = len(phrases)
		}
		for i := 0; i < limit; i++ {
			priority := 0.9 * (1.0 - float64(i)*0.1)
			queries = append(queries, Query{
				Text:            claimText + " " + phrases[i],
				MethodologyTag:  tag,
				Priority:        priority,
				MaxResults:      DefaultMaxResultsPerQuery,
				PerQueryTimeout: DefaultPerQueryTimeout,
				ContextTags:     []string{"methodology"},
			})
		}
		audit = append(audit, fmt.Sprintf("synthesized %d queries for methodology tag %q", limit, tag))
	}

	counterLimit := 4
	if counterLimit > len(counterPhrases) {
		counterLimit = len(counterPhrases)
	}
	for i := 0; i < counterLimit; i++ {
		priority := 0.5 * (1.0 - float64(i)*0.1)
		queries = append(queries, Query{
			Text:            claimText + " " + counterPhrases[i],
			MethodologyTag:  CounterEvidence,
			Priority:        priority,
			MaxResults:      DefaultMaxResultsPerQuery,
			PerQueryTimeout: DefaultPerQueryTimeout,
			ContextTags:     []string{"counter_evidence"},
		})
	}
	audit = append(audit, fmt.Sprintf("appended %d counter-evidence queries to avoid confirmation bias", counterLimit))

	queries, audit = enforceHardCap(queries, audit)

	strat := &SearchStrategy{
		ClaimText:           claimText,
		Queries:             queries,
		AuditTrail:          audit,
		MethodologyCoverage: coverage(queries),
		EstimatedTotalTime:  DefaultPerQueryTimeout,
	}

	if err := g.enforceIFCNCompliance(strat); err != nil {
		return nil, err
	}

	return strat, nil
}

// minimalStrategy builds the single-query, low-authority-weight
// strategy for the non-claim fast path.
func (g *Generator) minimalStrategy(claimText string) *SearchStrategy {
	q := Query{
		Text:            claimText,
		MethodologyTag:  IndependentResearch,
		Priority:        0.3,
		MaxResults:      DefaultMaxResultsPerQuery,
		PerQueryTimeout: DefaultPerQueryTimeout,
		ContextTags:     []string{"non_claim_fast_path"},
	}
	return &SearchStrategy{
		ClaimText:           claimText,
		Queries:             []Query{q},
		AuditTrail:          []string{"non-claim fast path: claim text has a non-claim surface shape and no factual indicator; skipping methodology enrichment"},
		IFCNCompliant:       true,
		MethodologyCoverage: coverage([]Query{q}),
		EstimatedTotalTime:  DefaultPerQueryTimeout,
	}
}

// fallbackStrategy builds the one-query-per-claim strategy used when
// methodology enrichment is disabled: the exact claim text at full
// priority, nothing else.
func (g *Generator) fallbackStrategy(claimText string) *SearchStrategy {
	q := Query{
		Text:            claimText,
		MethodologyTag:  IndependentResearch,
		Priority:        1.0,
		MaxResults:      DefaultMaxResultsPerQuery,
		PerQueryTimeout: DefaultPerQueryTimeout,
		ContextTags:     []string{"exact_match", "fallback"},
	}
	return &SearchStrategy{
		ClaimText:           claimText,
		Queries:             []Query{q},
		AuditTrail:          []string{"methodology-first generation disabled; single exact-match query"},
		IFCNCompliant:       true,
		MethodologyCoverage: coverage([]Query{q}),
		EstimatedTotalTime:  DefaultPerQueryTimeout,
	}
}

// enforceHardCap drops the lowest-priority queries once the count
// exceeds MaxQueries, preferring to drop counter-evidence queries
// first, then methodology queries, then primary — but never the
// original-claim exact-match query.
func enforceHardCap(queries []Query, audit []string) ([]Query, []string) {
	if len(queries) <= MaxQueries {
		return queries, audit
	}

	dropOrder := []MethodologyTag{CounterEvidence}
	// "methodology" covers every tag used for methodology queries;
	// anything that isn't counter-evidence or the anchor's exact-match
	// tag is droppable in the second pass.
	excess := len(queries) - MaxQueries
	dropped := 0

	isAnchor := func(q Query) bool {
		for _, t := range q.ContextTags {
			if t == "exact_match" {
				return true
			}
		}
		return false
	}

	for _, tag := range dropOrder {
		if dropped >= excess {
			break
		}
		queries, dropped = dropLowestPriorityWithTag(queries, tag, excess-dropped, isAnchor, dropped)
	}
	if dropped < excess {
		queries, dropped = dropLowestPriorityAny(queries, excess-dropped, isAnchor, dropped)
	}

	audit = append(audit, fmt.Sprintf("hard cap enforced: dropped %d lowest-priority queries to stay within %d", dropped, MaxQueries))
	return queries, audit
}

func dropLowestPriorityWithTag(queries []Query, tag MethodologyTag, n int, isAnchor func(Query) bool, droppedSoFar int) ([]Query, int) {
	for i := 0; i < n; i++ {
		idx := -1
		for j, q := range queries {
			if q.MethodologyTag != tag || isAnchor(q) {
				continue
			}
			if idx == -1 || q.Priority < queries[idx].Priority {
				idx = j
			}
		}
		if idx == -1 {
			break
		}
		queries = append(queries[:idx], queries[idx+1:]...)
		droppedSoFar++
	}
	return queries, droppedSoFar
}

func dropLowestPriorityAny(queries []Query, n int, isAnchor func(Query) bool, droppedSoFar int) ([]Query, int) {
	for i := 0; i < n; i++ {
		idx := -1
		for j, q := range queries {
			if isAnchor(q) {
				continue
			}
			if idx == -1 || q.Priority < queries[idx].Priority {
				idx = j
			}
		}
		if idx == -1 {
			break
		}
		queries = append(queries[:idx], queries[idx+1:]...)
		droppedSoFar++
	}
	return queries, droppedSoFar
}

// enforceIFCNCompliance checks strat for targeting-token or empty-tag
// violations, removes offending queries and retries once, and fails
// with GenerationError only if compliance still cannot be satisfied.
func (g *Generator) enforceIFCNCompliance(strat *SearchStrategy) error {
	bad := g.ifcn.violations(strat.Queries)
	if len(bad) > 0 {
		strat.Queries = removeIndices(strat.Queries, bad)
		strat.AuditTrail = append(strat.AuditTrail, fmt.Sprintf("IFCN compliance: removed %d offending queries and retried", len(bad)))
		strat.MethodologyCoverage = coverage(strat.Queries)
	}

	if len(strat.Queries) == 0 {
		return &GenerationError{ClaimText: strat.ClaimText, Reason: "no queries remained after removing IFCN-noncompliant queries"}
	}
	if len(strat.AuditTrail) == 0 {
		return &GenerationError{ClaimText: strat.ClaimText, Reason: "audit trail empty"}
	}
	if bad2 := g.ifcn.violations(strat.Queries); len(bad2) > 0 {
		return &GenerationError{ClaimText: strat.ClaimText, Reason: "compliance violations persisted after remediation"}
	}

	strat.IFCNCompliant = true
	return nil
}

func coverage(queries []Query) map[MethodologyTag]bool {
	cov := make(map[MethodologyTag]bool)
	for _, q := range queries {
		cov[q.MethodologyTag] = true
	}
	return cov
}
