package strategy

import (
	"regexp"
	"strings"
)

var (
	urlOnlyPattern     = regexp.MustCompile(`^\s*https?://\S+\s*$`)
	percentPattern     = regexp.MustCompile(`\d+(\.\d+)?\s*%`)
	yearPattern        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	largeNumberPattern = regexp.MustCompile(`(?i)\b\d[\d,]*\s*(million|billion|thousand)\b`)
)

var factualPhrases = []string{
	"study shows", "survey shows", "according to", "claims", "announced", "alleges", "reports", "states",
}

// isNonClaimShape reports whether text matches one of the non-claim
// surface patterns: URL-only, a question, an
// imperative, a bare topic phrase, ≤7 chars, or <4 words.
func isNonClaimShape(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 7 {
		return true
	}
	if urlOnlyPattern.MatchString(trimmed) {
		return true
	}
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	words := strings.Fields(trimmed)
	if len(words) < 4 {
		return true
	}
	if isImperative(words) {
		return true
	}
	if isTopicOnly(words) {
		return true
	}
	return false
}

var imperativeVerbs = map[string]bool{
	"explain": true, "describe": true, "list": true, "tell": true,
	"show": true, "compare": true, "define": true, "summarize": true,
	"find": true, "give": true,
}

func isImperative(words []string) bool {
	if len(words) == 0 {
		return false
	}
	return imperativeVerbs[strings.ToLower(words[0])]
}

// commonVerbs is a small closed-class helper: if a short phrase
// contains none of these, it reads as a bare topic noun phrase rather
// than an assertion.
var commonVerbs = []string{
	"is", "are", "was", "were", "has", "have", "had", "causes", "caused",
	"increased", "decreased", "contains", "rigged", "will", "can", "does",
	"did", "said", "claims", "shows", "found",
}

func isTopicOnly(words []string) bool {
	if len(words) > 6 {
		return false
	}
	lower := strings.ToLower(strings.Join(words, " "))
	for _, v := range commonVerbs {
		if strings.Contains(lower, v) {
			return false
		}
	}
	return true
}

// hasFactualIndicator reports whether text contains a percentage, a
// year, a large-number phrase, or a factual/stance-reporting phrase.
func hasFactualIndicator(text string) bool {
	if percentPattern.MatchString(text) || yearPattern.MatchString(text) || largeNumberPattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range factualPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// IsNonClaim reports whether claimText should take the non-claim fast
// path: it matches a non-claim surface shape AND carries no factual
// indicator overriding that shape.
func IsNonClaim(claimText string) bool {
	return isNonClaimShape(claimText) && !hasFactualIndicator(claimText)
}
