package orchestrator

import (
	"factcheck/internal/scoring"
)

// assembleCapsule builds the TrustCapsule from every claim's result,
// preserving input order.
// Claims whose strategy generation failed are dropped from per_claim
// but the capsule is still produced as long as at least one claim
// completed.
func assembleCapsule(results []ClaimScore) *TrustCapsule {
	perClaim := make([]ClaimScore, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		perClaim = append(perClaim, r)
	}

	overallScore := meanTrustScore(perClaim)
	overallGrade := scoring.ToGrade(overallScore)

	return &TrustCapsule{
		OverallScore: overallScore,
		OverallGrade: overallGrade,
		PerClaim:     perClaim,
		Citations:    collectCitations(perClaim),
	}
}

func meanTrustScore(claims []ClaimScore) float64 {
	if len(claims) == 0 {
		return 0
	}
	var sum float64
	for _, c := range claims {
		sum += c.TrustScore
	}
	return sum / float64(len(claims))
}

func collectCitations(claims []ClaimScore) []Citation {
	seen := make(map[string]bool)
	var out []Citation
	addAll := func(summaries []EvidenceSummary) {
		for _, s := range summaries {
			key := s.SourceDomain + "|" + s.SourceURL
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Citation{Title: s.SourceTitle, Domain: s.SourceDomain, URL: s.SourceURL, Date: s.PublishDate})
		}
	}
	for _, c := range claims {
		addAll(c.Supporting)
		addAll(c.Contradicting)
		addAll(c.Neutral)
	}
	return out
}
