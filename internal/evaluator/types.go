// Package evaluator implements the Dual Evaluator (C3): two logically
// independent LLM-based evaluators score each evidence candidate for
// relevance and stance, subject to mandatory hard rules, then each
// scored candidate is passed through the Quality Assessor (C3.1).
package evaluator

// Stance is the relationship one piece of evidence bears to the claim
// it was gathered for.
type Stance string

const (
	Supporting    Stance = "supporting"
	Contradicting Stance = "contradicting"
	Neutral       Stance = "neutral"
)

// ID names which of the two independent evaluator instances produced a
// ProcessedEvidence.
type ID string

const (
	EvaluatorA ID = "A"
	EvaluatorB ID = "B"
)

// ProcessedEvidence is one scored piece of evidence. It is
// never mutated after an evaluator returns it; the hard rules in
// rules.go run once, before the value is constructed.
type ProcessedEvidence struct {
	CandidateIndex int // index into the batch's input candidates
	EvaluatorID    ID

	SourceURL    string
	SourceDomain string
	SourceTitle  string
	PublishDate  string
	Text         string

	Relevance    float64 // 0-100
	Stance       Stance
	Confidence   float64 // 0-1
	Reasoning    string
	KeyExcerpt   string // <=100 chars, substring of candidate text
	QualityScore float64 // 0-100, set by the Quality Assessor
}

// PassesFilterFloor reports whether e survives the filter floor:
// drop items with relevance < 60 OR confidence < 0.5 OR quality_score < 60.
func (e ProcessedEvidence) PassesFilterFloor() bool {
	return e.Relevance >= 60 && e.Confidence >= 0.5 && e.QualityScore >= 60
}

// rankKey is relevance*confidence, the primary sort key.
func (e ProcessedEvidence) rankKey() float64 {
	return e.Relevance * e.Confidence
}
