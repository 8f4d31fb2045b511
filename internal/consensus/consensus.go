// Package consensus implements the Consensus Layer (C4): it combines
// the primary and secondary evaluators' ProcessedEvidence sets into one
// EvidencePool per claim, plus consensus metadata.
package consensus

import (
	"fmt"
	"math"
	"sort"

	"factcheck/internal/evaluator"
)

// Pool sizing and disagreement constants.
const (
	QualityFloor                 = 60.0
	PerEvaluatorCap              = 5
	PoolCap                      = 6
	DisagreementPenaltyThreshold = 30.0
	DisagreementPenaltyFactor    = 0.8
)

// Report is the consensus metadata handed to the Scoring Engine
// alongside the EvidencePool.
type Report struct {
	ConsensusScore        float64
	ConsensusStance       evaluator.Stance
	DisagreementLevel     float64
	PrimaryAvgRelevance   float64
	SecondaryAvgRelevance float64
	// AgreementVariance is a richer uncertainty signal than
	// DisagreementLevel alone: variance of quality_score across the
	// combined pool.
	AgreementVariance float64
	UncertaintyNotes  string
}

// Combine merges both evaluators' evidence sets into one pool and
// derives the consensus metadata.
func Combine(primary, secondary []evaluator.ProcessedEvidence) ([]evaluator.ProcessedEvidence, Report) {
	primaryFiltered := capped(qualityFilter(primary), PerEvaluatorCap)
	secondaryFiltered := capped(qualityFilter(secondary), PerEvaluatorCap)

	pool := combinePools(primaryFiltered, secondaryFiltered)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].QualityScore > pool[j].QualityScore
	})
	if len(pool) > PoolCap {
		pool = pool[:PoolCap]
	}

	primaryAvg := avgRelevance(primaryFiltered)
	secondaryAvg := avgRelevance(secondaryFiltered)
	consensusScore := (primaryAvg + secondaryAvg) / 2
	disagreement := math.Abs(primaryAvg - secondaryAvg)
	if disagreement > 100 {
		disagreement = 100
	}
	if disagreement < 0 {
		disagreement = 0
	}
	if disagreement > DisagreementPenaltyThreshold {
		consensusScore *= DisagreementPenaltyFactor
	}

	stance := tallyStance(pool)
	if stanceOverrideBlocksSupporting(pool) && stance == evaluator.Supporting {
		stance = resolveWithoutSupporting(pool)
	}

	variance := agreementVariance(pool)

	report := Report{
		ConsensusScore:        consensusScore,
		ConsensusStance:       stance,
		DisagreementLevel:     disagreement,
		PrimaryAvgRelevance:   primaryAvg,
		SecondaryAvgRelevance: secondaryAvg,
		AgreementVariance:     variance,
		UncertaintyNotes:      uncertaintyNotes(disagreement, pool),
	}

	return pool, report
}

func qualityFilter(evidence []evaluator.ProcessedEvidence) []evaluator.ProcessedEvidence {
	out := make([]evaluator.ProcessedEvidence, 0, len(evidence))
	for _, e := range evidence {
		if e.QualityScore >= QualityFloor {
			out = append(out, e)
		}
	}
	return out
}

func capped(evidence []evaluator.ProcessedEvidence, n int) []evaluator.ProcessedEvidence {
	if len(evidence) > n {
		return evidence[:n]
	}
	return evidence
}

// combinePools starts with primary-filtered items (preserving order),
// then appends secondary-filtered items whose source_domain is not
// already present. Items sharing an exact URL dedupe even when the
// domain map misses them (e.g. an item with an empty domain).
func combinePools(primary, secondary []evaluator.ProcessedEvidence) []evaluator.ProcessedEvidence {
	seenDomains := make(map[string]bool, len(primary))
	seenURLs := make(map[string]bool, len(primary))
	pool := make([]evaluator.ProcessedEvidence, 0, len(primary)+len(secondary))
	for _, e := range primary {
		pool = append(pool, e)
		if e.SourceDomain != "" {
			seenDomains[e.SourceDomain] = true
		}
		if e.SourceURL != "" {
			seenURLs[e.SourceURL] = true
		}
	}
	for _, e := range secondary {
		if e.SourceDomain != "" && seenDomains[e.SourceDomain] {
			continue
		}
		if e.SourceURL != "" && seenURLs[e.SourceURL] {
			continue
		}
		pool = append(pool, e)
		if e.SourceDomain != "" {
			seenDomains[e.SourceDomain] = true
		}
		if e.SourceURL != "" {
			seenURLs[e.SourceURL] = true
		}
	}
	return pool
}

func avgRelevance(evidence []evaluator.ProcessedEvidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var sum float64
	for _, e := range evidence {
		sum += e.Relevance
	}
	return sum / float64(len(evidence))
}

// tallyStance applies the raw-count rule:
// supporting > contradicting -> supporting; contradicting > supporting
// -> contradicting; else neutral.
func tallyStance(pool []evaluator.ProcessedEvidence) evaluator.Stance {
	var supporting, contradicting int
	for _, e := range pool {
		switch e.Stance {
		case evaluator.Supporting:
			supporting++
		case evaluator.Contradicting:
			contradicting++
		}
	}
	switch {
	case supporting > contradicting:
		return evaluator.Supporting
	case contradicting > supporting:
		return evaluator.Contradicting
	default:
		return evaluator.Neutral
	}
}

// stanceOverrideBlocksSupporting reports whether any pool item is
// contradicting with quality_score >= 70 and relevance >= 70, in which
// case the consensus stance must not be supporting.
func stanceOverrideBlocksSupporting(pool []evaluator.ProcessedEvidence) bool {
	for _, e := range pool {
		if e.Stance == evaluator.Contradicting && e.QualityScore >= 70 && e.Relevance >= 70 {
			return true
		}
	}
	return false
}

// resolveWithoutSupporting re-derives a stance excluding "supporting"
// as a valid outcome, used only when the override above fires.
func resolveWithoutSupporting(pool []evaluator.ProcessedEvidence) evaluator.Stance {
	var contradicting, neutral int
	for _, e := range pool {
		switch e.Stance {
		case evaluator.Contradicting:
			contradicting++
		default:
			neutral++
		}
	}
	if contradicting > 0 {
		return evaluator.Contradicting
	}
	return evaluator.Neutral
}

func agreementVariance(pool []evaluator.ProcessedEvidence) float64 {
	if len(pool) == 0 {
		return 0
	}
	mean := 0.0
	for _, e := range pool {
		mean += e.QualityScore
	}
	mean /= float64(len(pool))

	var sumSq float64
	for _, e := range pool {
		d := e.QualityScore - mean
		sumSq += d * d
	}
	return sumSq / float64(len(pool))
}

func uncertaintyNotes(disagreement float64, pool []evaluator.ProcessedEvidence) string {
	var supporting, contradicting, neutral int
	for _, e := range pool {
		switch e.Stance {
		case evaluator.Supporting:
			supporting++
		case evaluator.Contradicting:
			contradicting++
		default:
			neutral++
		}
	}
	note := fmt.Sprintf("evaluator disagreement level %.1f; pool stances: %d supporting, %d contradicting, %d neutral",
		disagreement, supporting, contradicting, neutral)
	if disagreement > DisagreementPenaltyThreshold {
		note += "; consensus score penalized for high disagreement"
	}
	if supporting > 0 && contradicting > 0 {
		note += "; mixed-stance evidence present"
	}
	return note
}
