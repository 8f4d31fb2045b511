package scoring

import "strings"

const (
	sourceAttributionMax = 25.0
	multiSourceMax       = 30.0
	sourceDiversityMax   = 20.0
	accessibilityMax     = 15.0
	researchDepthMax     = 10.0
)

// diversityPoints maps unique-domain count to source-diversity points.
func diversityPoints(uniqueDomains int) float64 {
	switch {
	case uniqueDomains >= 5:
		return 20
	case uniqueDomains == 4:
		return 16
	case uniqueDomains == 3:
		return 12
	case uniqueDomains == 2:
		return 8
	case uniqueDomains == 1:
		return 4
	default:
		return 0
	}
}

// EvidenceGradeScore computes the 0-100 research-process-quality score
// independent of stance.
func EvidenceGradeScore(evidence []EvidenceInput) float64 {
	if len(evidence) == 0 {
		return 0
	}
	n := float64(len(evidence))

	var attributed, accessible float64
	domains := make(map[string]int)
	var depthSum float64

	for _, e := range evidence {
		if e.HasTitle && e.HasDomain && e.SourceURL != "" {
			attributed++
		}
		if strings.HasPrefix(e.SourceURL, "http://") || strings.HasPrefix(e.SourceURL, "https://") {
			accessible++
		}
		if e.SourceDomain != "" {
			domains[e.SourceDomain]++
		}
		depthSum += depthScore(e)
	}

	sourceAttribution := (attributed / n) * sourceAttributionMax
	accessibility := (accessible / n) * accessibilityMax
	researchDepth := (depthSum / n) * researchDepthMax

	multiSource := multiSourceVerification(evidence, domains)
	diversity := diversityPoints(len(domains))

	total := sourceAttribution + multiSource + diversity + accessibility + researchDepth
	return clamp(total, 0, 100)
}

// multiSourceVerification scores agreement across sources: the
// fraction of evidence sharing the pool's majority stance, scaled to
// multiSourceMax, plus a flat diversity bonus once at least two
// distinct domains corroborate.
func multiSourceVerification(evidence []EvidenceInput, domains map[string]int) float64 {
	counts := map[string]int{}
	for _, e := range evidence {
		counts[e.Stance]++
	}
	maxAgreement := 0
	for _, c := range counts {
		if c > maxAgreement {
			maxAgreement = c
		}
	}
	agreementFraction := float64(maxAgreement) / float64(len(evidence))
	score := agreementFraction * (multiSourceMax - 5)

	if len(domains) >= 2 {
		score += 5
	}
	return clamp(score, 0, multiSourceMax)
}

func depthScore(e EvidenceInput) float64 {
	lengthComponent := float64(e.ContentChars) / 2000.0
	if lengthComponent > 0.6 {
		lengthComponent = 0.6
	}
	relevanceComponent := (e.Relevance / 100.0) * 0.4
	return clamp(lengthComponent+relevanceComponent, 0, 1.0)
}

// ToGrade buckets a 0-100 evidence-grade (or overall) score into its
// letter, per thresholds.
func ToGrade(score float64) Grade {
	switch {
	case score >= 97:
		return GradeAPlus
	case score >= 90:
		return GradeA
	case score >= 87:
		return GradeBPlus
	case score >= 80:
		return GradeB
	case score >= 77:
		return GradeCPlus
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}
