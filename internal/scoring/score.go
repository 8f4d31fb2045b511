package scoring

// Score computes the full ClaimScore for one claim's evidence pool.
// An empty pool yields trust_score=0, grade=F with a reason, never an
// error.
func Score(evidence []EvidenceInput) ClaimScore {
	if len(evidence) == 0 {
		return ClaimScore{
			TrustScore:         0,
			EvidenceGrade:      GradeF,
			EvidenceGradeScore: 0,
			ScoringReason:      "empty evidence pool",
		}
	}

	trust, reason := TrustScore(evidence)
	gradeScore := EvidenceGradeScore(evidence)

	return ClaimScore{
		TrustScore:         trust,
		EvidenceGrade:      ToGrade(gradeScore),
		EvidenceGradeScore: gradeScore,
		ScoringReason:      reason,
	}
}
