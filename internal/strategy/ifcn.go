package strategy

import "strings"

// DefaultTargetingTokens seeds the "domain host used as a targeting
// token" deny list IFCN compliance checks against. Methodology-first
// search targets kinds of evidence, never named institutions, so a
// query mentioning one of these hosts directly is non-compliant
// regardless of intent.
var DefaultTargetingTokens = []string{"cdc.gov", "nih.gov", "fda.gov", "who.int"}

// ifcnChecker holds the configurable targeting-token set. newIFCNChecker
// falls back to DefaultTargetingTokens when given an empty list; the
// zero value checks no tokens at all.
type ifcnChecker struct {
	targetingTokens []string
}

func newIFCNChecker(tokens []string) *ifcnChecker {
	if len(tokens) == 0 {
		tokens = DefaultTargetingTokens
	}
	return &ifcnChecker{targetingTokens: tokens}
}

// containsTargetingToken reports whether queryText names one of the
// deny-listed institutional hosts.
func (c *ifcnChecker) containsTargetingToken(queryText string) bool {
	lower := strings.ToLower(queryText)
	for _, token := range c.targetingTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// violations returns the indices of queries in qs that violate IFCN
// compliance: a targeting-token mention, or an empty methodology tag.
func (c *ifcnChecker) violations(qs []Query) []int {
	var bad []int
	for i, q := range qs {
		if c.containsTargetingToken(q.Text) || q.MethodologyTag == "" {
			bad = append(bad, i)
		}
	}
	return bad
}

// removeIndices returns qs with the given indices removed, preserving
// order of the remainder.
func removeIndices(qs []Query, indices []int) []Query {
	if len(indices) == 0 {
		return qs
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	out := make([]Query, 0, len(qs))
	for i, q := range qs {
		if !drop[i] {
			out = append(out, q)
		}
	}
	return out
}
