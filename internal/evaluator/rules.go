package evaluator

import (
	"regexp"
	"strings"
)

// negationCues are the tokens that force a contradicting stance when
// found near the claim's predicate.
var negationCues = []string{"no", "not", "false", "debunked", "myth", "disproven"}

const negationWindowWords = 10

var wordSplit = regexp.MustCompile(`\s+`)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "of": true,
	"in": true, "to": true, "and": true, "was": true, "were": true, "by": true,
	"its": true, "it": true, "that": true, "this": true, "for": true, "on": true,
}

func contentWords(text string) []string {
	var out []string
	for _, w := range wordSplit.Split(strings.ToLower(text), -1) {
		w = strings.Trim(w, ".,!?\"'")
		if len(w) > 3 && !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// negationOverride reports whether evidenceText contains a negation
// cue within a short window of one of the claim's content words,
// implementing mandatory rule 1.
func negationOverride(claimText, evidenceText string) bool {
	claimWords := contentWords(claimText)
	if len(claimWords) == 0 {
		return false
	}
	claimSet := make(map[string]bool, len(claimWords))
	for _, w := range claimWords {
		claimSet[w] = true
	}

	evidenceWords := wordSplit.Split(strings.ToLower(evidenceText), -1)
	cueSet := make(map[string]bool, len(negationCues))
	for _, c := range negationCues {
		cueSet[c] = true
	}

	for i, w := range evidenceWords {
		clean := strings.Trim(w, ".,!?\"'")
		if !cueSet[clean] {
			continue
		}
		lo := i - negationWindowWords
		if lo < 0 {
			lo = 0
		}
		hi := i + negationWindowWords
		if hi > len(evidenceWords) {
			hi = len(evidenceWords)
		}
		for j := lo; j < hi; j++ {
			if j == i {
				continue
			}
			cw := strings.Trim(strings.ToLower(evidenceWords[j]), ".,!?\"'")
			if claimSet[cw] {
				return true
			}
		}
	}
	return false
}

var riggedPattern = regexp.MustCompile(`(?i)\b(rigged|fraudulent|fake)\b`)
var processIntegrityWords = []string{"process", "integrity", "procedure", "audit", "recount", "fraud", "tamper", "irregularit"}

var causesPattern = regexp.MustCompile(`(?i)\bcauses?\b`)
var causalLanguageWords = []string{"cause", "causal", "link", "due to", "result in", "leads to", "mechanism"}

// focusOnCoreAssertion implements mandatory rule 3: for
// "X is rigged/fraudulent/fake" claims, evidence about the outcome
// alone (without addressing process integrity) is forced neutral. For
// "X causes Y" claims, evidence must address causality to remain
// supporting/contradicting.
func focusOnCoreAssertion(claimText, evidenceText string) (mustBeNeutral bool) {
	lowerEvidence := strings.ToLower(evidenceText)

	if riggedPattern.MatchString(claimText) {
		if !containsAny(lowerEvidence, processIntegrityWords) {
			return true
		}
	}
	if causesPattern.MatchString(claimText) {
		if !containsAny(lowerEvidence, causalLanguageWords) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// applyHardRules runs the mandatory rules in order and
// returns the final stance. rawStance/rawConfidence are the
// evaluator's self-reported output before rules are applied.
func applyHardRules(claimText, evidenceText string, rawStance Stance, rawConfidence float64) Stance {
	if negationOverride(claimText, evidenceText) {
		return Contradicting
	}
	if rawConfidence < 0.7 {
		return Neutral
	}
	if focusOnCoreAssertion(claimText, evidenceText) {
		return Neutral
	}
	return rawStance
}
