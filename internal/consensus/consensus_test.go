package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck/internal/evaluator"
)

func ev(domain string, stance evaluator.Stance, relevance, quality float64) evaluator.ProcessedEvidence {
	return evaluator.ProcessedEvidence{SourceDomain: domain, Stance: stance, Relevance: relevance, QualityScore: quality, Confidence: 0.9}
}

func TestCombineDedupesByDomain(t *testing.T) {
	primary := []evaluator.ProcessedEvidence{
		ev("nature.com", evaluator.Supporting, 90, 95),
		ev("cdc.gov", evaluator.Supporting, 85, 90),
	}
	secondary := []evaluator.ProcessedEvidence{
		ev("cdc.gov", evaluator.Supporting, 80, 88), // duplicate domain, should be skipped
		ev("nejm.org", evaluator.Supporting, 88, 92),
	}
	pool, report := Combine(primary, secondary)

	require.Len(t, pool, 3)
	domains := map[string]bool{}
	for _, e := range pool {
		domains[e.SourceDomain] = true
	}
	assert.True(t, domains["nature.com"] && domains["cdc.gov"] && domains["nejm.org"])
	assert.Equal(t, evaluator.Supporting, report.ConsensusStance)
}

func TestStanceOverrideBlocksSupporting(t *testing.T) {
	primary := []evaluator.ProcessedEvidence{
		ev("a.com", evaluator.Supporting, 90, 90),
		ev("b.com", evaluator.Supporting, 90, 90),
	}
	secondary := []evaluator.ProcessedEvidence{
		ev("c.com", evaluator.Contradicting, 75, 75),
	}
	pool, report := Combine(primary, secondary)
	require.NotEmpty(t, pool)
	assert.NotEqual(t, evaluator.Supporting, report.ConsensusStance)
}

func TestDisagreementPenaltyApplied(t *testing.T) {
	primary := []evaluator.ProcessedEvidence{ev("a.com", evaluator.Supporting, 95, 90)}
	secondary := []evaluator.ProcessedEvidence{ev("b.com", evaluator.Supporting, 40, 90)}
	_, report := Combine(primary, secondary)
	assert.Greater(t, report.DisagreementLevel, DisagreementPenaltyThreshold)
	// raw mean would be (95+40)/2 = 67.5; penalized by 0.8x
	assert.InDelta(t, 67.5*0.8, report.ConsensusScore, 0.01)
}

func TestUncertaintyNotesNonEmpty(t *testing.T) {
	_, report := Combine(nil, nil)
	assert.NotEmpty(t, report.UncertaintyNotes)
}

func TestCombineDedupesByURLWhenDomainMissing(t *testing.T) {
	withURL := func(e evaluator.ProcessedEvidence, url string) evaluator.ProcessedEvidence {
		e.SourceURL = url
		return e
	}
	primary := []evaluator.ProcessedEvidence{
		withURL(ev("", evaluator.Supporting, 90, 95), "https://example.com/a"),
	}
	secondary := []evaluator.ProcessedEvidence{
		withURL(ev("", evaluator.Supporting, 85, 90), "https://example.com/a"),
		withURL(ev("", evaluator.Supporting, 80, 88), "https://other.com/b"),
	}
	pool, _ := Combine(primary, secondary)
	require.Len(t, pool, 2)
}
