package evaluator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// qualityWeights are six sub-score weights, in the same
// order as the scoring functions below.
var qualityWeights = [6]float64{0.25, 0.20, 0.20, 0.15, 0.15, 0.05}

var (
	rctPattern        = regexp.MustCompile(`(?i)randomized controlled trial|double-blind|placebo-controlled`)
	sampleSizePattern = regexp.MustCompile(`(?i)\bn\s*=\s*(\d[\d,]*)`)
	pValuePattern     = regexp.MustCompile(`(?i)p\s*[<=]\s*0?\.\d+|confidence interval|\bci\b`)
	peerReviewPattern = regexp.MustCompile(`(?i)peer[- ]reviewed|published in|journal of`)
	doiPattern        = regexp.MustCompile(`(?i)\bdoi:\s*10\.\d{4,9}/\S+`)
	dataAvailPattern  = regexp.MustCompile(`(?i)data availability|data is available|raw data`)
	fundingPattern    = regexp.MustCompile(`(?i)funded by|funding (was )?(provided|disclosed)|conflict(s)? of interest`)
	recentYearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// QualityScore computes the weighted quality_score in [0,100] for one
// candidate's text.
func QualityScore(text string) float64 {
	scores := [6]float64{
		methodologyRigor(text),
		peerReviewSignals(text),
		reproducibilitySignals(text),
		citationAuthoritySignals(text),
		transparencySignals(text),
		temporalConsistency(text),
	}
	var total float64
	for i, s := range scores {
		total += s * qualityWeights[i]
	}
	return clamp(total, 0, 100)
}

func methodologyRigor(text string) float64 {
	score := 0.0
	if rctPattern.MatchString(text) {
		score += 60
	}
	if m := sampleSizePattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if n >= 1000 {
			score += 40
		} else if n >= 100 {
			score += 25
		} else if n > 0 {
			score += 10
		}
	}
	return clamp(score, 0, 100)
}

func peerReviewSignals(text string) float64 {
	score := 0.0
	if peerReviewPattern.MatchString(text) {
		score += 70
	}
	if pValuePattern.MatchString(text) {
		score += 30
	}
	return clamp(score, 0, 100)
}

func reproducibilitySignals(text string) float64 {
	score := 0.0
	if dataAvailPattern.MatchString(text) {
		score += 60
	}
	if doiPattern.MatchString(text) {
		score += 40
	}
	return clamp(score, 0, 100)
}

func citationAuthoritySignals(text string) float64 {
	score := 0.0
	if doiPattern.MatchString(text) {
		score += 50
	}
	if peerReviewPattern.MatchString(text) {
		score += 50
	}
	return clamp(score, 0, 100)
}

func transparencySignals(text string) float64 {
	score := 0.0
	if fundingPattern.MatchString(text) {
		score += 60
	}
	if dataAvailPattern.MatchString(text) {
		score += 40
	}
	return clamp(score, 0, 100)
}

func temporalConsistency(text string) float64 {
	matches := recentYearPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return 40 // no date signal is mildly penalized, not zeroed
	}
	currentYear := referenceYear()
	best := 0.0
	for _, m := range matches {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		age := currentYear - year
		var s float64
		switch {
		case age <= 2:
			s = 100
		case age <= 5:
			s = 80
		case age <= 10:
			s = 60
		default:
			s = 30
		}
		if s > best {
			best = s
		}
	}
	return best
}

// referenceYearOverride, when non-zero, replaces time.Now().Year() as
// the year temporalConsistency measures age against. Nothing in this
// module sets it, so the current year is used.
var referenceYearOverride int

func referenceYear() int {
	if referenceYearOverride != 0 {
		return referenceYearOverride
	}
	return time.Now().Year()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
