// Package scoring implements the Scoring Engine (C5): zero-start
// evidence accumulation produces trust_score, and an independent
// rubric produces evidence_grade.
package scoring

// Grade is a letter evidence grade.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// EvidenceInput is the minimal per-evidence-piece shape the scoring
// engine needs; it is deliberately narrower than evaluator.ProcessedEvidence
// so this package has no dependency on the evaluator package (pure
// arithmetic stage, per "tagged records per stage").
type EvidenceInput struct {
	Stance       string  // "supporting", "contradicting", "neutral"
	Relevance    float64 // 0-100
	Confidence   float64 // 0-1
	QualityScore float64 // used as a proxy confidence floor upstream, not reused here
	SourceDomain string
	SourceURL    string
	SourceTitle  string
	ContentChars int
	HasTitle     bool
	HasDomain    bool
}

// ClaimScore is the per-claim output.
type ClaimScore struct {
	TrustScore         float64
	EvidenceGrade      Grade
	EvidenceGradeScore float64
	ScoringReason      string
}
