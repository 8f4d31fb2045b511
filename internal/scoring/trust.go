package scoring

import "strings"

// Base impact weight per evidence piece.
const baseImpact = 15.0

// PerPieceImpactCap is the cap on any single piece's contribution,
// after the authority bonus is added.
const PerPieceImpactCap = 25.0

// MixClampLow/MixClampHigh bound the mixed-evidence trust score before
// the volume-confidence modifier is applied.
const (
	MixClampLow  = 15.0
	MixClampHigh = 85.0
)

const MaxMixedEvidencePenalty = 0.30

// QualityWeight grows [1.0,2.0] with content length and an HTTPS
// source.
func QualityWeight(contentChars int, isHTTPS bool) float64 {
	length := float64(contentChars) / 3000.0
	if length > 0.7 {
		length = 0.7
	}
	https := 0.0
	if isHTTPS {
		https = 0.3
	}
	return clamp(1.0+length+https, 1.0, 2.0)
}

// pieceImpact computes one evidence piece's capped, unsigned impact.
func pieceImpact(e EvidenceInput) float64 {
	relevanceFraction := e.Relevance / 100.0
	confidence := clamp(e.Confidence, 0.5, 1.0)
	weight := QualityWeight(e.ContentChars, strings.HasPrefix(strings.ToLower(e.SourceURL), "https://"))
	raw := relevanceFraction * weight * confidence * baseImpact
	bonus := AuthorityBonus(e.SourceDomain)
	return clamp(raw+bonus, 0, PerPieceImpactCap)
}

// strengthToTrust maps a signed strength_ratio in [-1,1] to a trust
// score.
func strengthToTrust(ratio float64) float64 {
	switch {
	case ratio > 0.7:
		return 70 + (ratio-0.7)*100
	case ratio < -0.7:
		return 30 * (1 + ratio/0.7)
	default:
		return 50 + ratio*50
	}
}

// TrustScore computes the zero-start trust_score for one claim's
// EvidencePool. An empty pool yields 0 with the reason
// "empty evidence pool".
func TrustScore(evidence []EvidenceInput) (score float64, reason string) {
	if len(evidence) == 0 {
		return 0, "empty evidence pool"
	}

	var accumulated, totalWeight, supportingWeight, contradictingWeight float64
	for _, e := range evidence {
		impact := pieceImpact(e)
		totalWeight += impact
		switch e.Stance {
		case "supporting":
			accumulated += impact
			supportingWeight += impact
		case "contradicting":
			accumulated -= impact
			contradictingWeight += impact
		}
	}

	if totalWeight == 0 {
		return 50, "all evidence neutral; no directional weight accumulated"
	}

	ratio := accumulated / totalWeight
	trust := strengthToTrust(ratio)

	mixed := supportingWeight > 0 && contradictingWeight > 0
	if mixed {
		penalty := mixedEvidencePenalty(supportingWeight, contradictingWeight)
		trust *= (1 - penalty)
		trust = clamp(trust, MixClampLow, MixClampHigh)
	}

	trust *= volumeConfidence(len(evidence))
	trust = clamp(trust, 0, 100)

	reason = "zero-start accumulation"
	if mixed {
		reason = "mixed supporting/contradicting evidence; penalty and clamp applied"
	}
	return trust, reason
}

// mixedEvidencePenalty is proportional to how balanced the conflict is,
// capped at MaxMixedEvidencePenalty.
func mixedEvidencePenalty(supportingWeight, contradictingWeight float64) float64 {
	lo, hi := supportingWeight, contradictingWeight
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	balance := lo / hi // 1.0 = perfectly balanced conflict
	return balance * MaxMixedEvidencePenalty
}

// volumeConfidence discounts sparse evidence pools.
func volumeConfidence(n int) float64 {
	switch {
	case n >= 6:
		return 1.0
	case n >= 4:
		return 0.95
	case n >= 2:
		return 0.85
	default:
		return 0.7
	}
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
