package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck/internal/fanout"
)

type fakeLLMClient struct {
	responses []string
	calls     int
}

func (f *fakeLLMClient) ModelName() string { return "fake-model" }

func (f *fakeLLMClient) Generate(ctx context.Context, systemPrompt, userContent string, maxOutputTokens int, temperature float64) (string, error) {
	if f.calls >= len(f.responses) {
		return "", assertErr("no more canned responses")
	}
	r := f.responses[f.calls]
	f.calls++
	return r, nil
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestEvaluateParsesBatchJSON(t *testing.T) {
	client := &fakeLLMClient{responses: []string{
		`[{"index":0,"relevance":90,"stance":"supporting","confidence":0.9,"reasoning":"r","key_excerpt":"the earth is round"}]`,
	}}
	ev := New(EvaluatorA, client)
	candidates := []fanout.EvidenceCandidate{{Text: "NASA confirms the earth is round using satellite imagery.", SourceDomain: "nasa.gov"}}

	result := ev.Evaluate(context.Background(), "c1", "The Earth is round", candidates)
	require.Len(t, result, 1)
	assert.Equal(t, Supporting, result[0].Stance)
	assert.InDelta(t, 90.0, result[0].Relevance, 0.01)
}

func TestEvaluateFallsBackOnUnparseableOutput(t *testing.T) {
	client := &fakeLLMClient{responses: []string{
		"not json at all",
		"still not json",
	}}
	ev := New(EvaluatorA, client)
	candidates := []fanout.EvidenceCandidate{{Text: "some claim related content here", SourceDomain: "example.com"}}

	result := ev.Evaluate(context.Background(), "c1", "some claim", candidates)
	require.Len(t, result, 1)
	assert.Equal(t, Neutral, result[0].Stance)
	assert.InDelta(t, 0.4, result[0].Confidence, 0.001)
}

func TestNegationOverrideForcesContradicting(t *testing.T) {
	stance := applyHardRules("vaccines cause autism", "Studies show there is no link between vaccines and autism, debunked by researchers.", Supporting, 0.9)
	assert.Equal(t, Contradicting, stance)
}

func TestConfidenceGateForcesNeutral(t *testing.T) {
	stance := applyHardRules("the earth is round", "some weak evidence", Supporting, 0.5)
	assert.Equal(t, Neutral, stance)
}

func TestFocusOnCoreAssertionRigged(t *testing.T) {
	mustNeutral := focusOnCoreAssertion("the election was rigged", "turnout was the highest in decades")
	assert.True(t, mustNeutral)

	notNeutral := focusOnCoreAssertion("the election was rigged", "the audit found no irregularities in the process")
	assert.False(t, notNeutral)
}

func TestQualityScoreRewardsMethodologySignals(t *testing.T) {
	strong := "This randomized controlled trial (n=5000) published in a peer-reviewed journal found p<0.001. Data is available at doi:10.1000/xyz. Funded by NIH, no conflicts of interest. Published 2024."
	weak := "Someone said this on social media."
	assert.Greater(t, QualityScore(strong), QualityScore(weak))
}

func TestPassesFilterFloor(t *testing.T) {
	good := ProcessedEvidence{Relevance: 70, Confidence: 0.6, QualityScore: 65}
	bad := ProcessedEvidence{Relevance: 50, Confidence: 0.6, QualityScore: 65}
	assert.True(t, good.PassesFilterFloor())
	assert.False(t, bad.PassesFilterFloor())
}

func TestEvaluateReordersVerdictsByIndex(t *testing.T) {
	client := &fakeLLMClient{responses: []string{
		`[{"index":1,"relevance":40,"stance":"neutral","confidence":0.9,"reasoning":"second","key_excerpt":""},
		  {"index":0,"relevance":90,"stance":"supporting","confidence":0.9,"reasoning":"first","key_excerpt":""}]`,
	}}
	ev := New(EvaluatorA, client)
	candidates := []fanout.EvidenceCandidate{
		{Text: "first candidate content here", SourceDomain: "a.com"},
		{Text: "second candidate content here", SourceDomain: "b.com"},
	}

	result := ev.Evaluate(context.Background(), "c1", "a factual claim under evaluation", candidates)
	require.Len(t, result, 2)
	assert.InDelta(t, 90.0, result[0].Relevance, 0.01)
	assert.InDelta(t, 40.0, result[1].Relevance, 0.01)
}
