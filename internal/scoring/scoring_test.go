package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strongSupporting(domain string) EvidenceInput {
	return EvidenceInput{
		Stance:    "supporting", Relevance: 88, Confidence: 0.9, SourceDomain: domain,
		SourceURL: "https://" + domain + "/a", HasTitle: true, HasDomain: true, ContentChars: 3000,
	}
}

func strongContradicting(domain string) EvidenceInput {
	return EvidenceInput{
		Stance:    "contradicting", Relevance: 88, Confidence: 0.9, SourceDomain: domain,
		SourceURL: "https://" + domain + "/a", HasTitle: true, HasDomain: true, ContentChars: 3000,
	}
}

func TestEmptyPoolYieldsZeroAndF(t *testing.T) {
	s := Score(nil)
	assert.Equal(t, 0.0, s.TrustScore)
	assert.Equal(t, GradeF, s.EvidenceGrade)
}

func TestSixHighQualitySupportingYieldsHighTrust(t *testing.T) {
	var pool []EvidenceInput
	domains := []string{"nature.com", "science.org", "nejm.org", "thelancet.com", "cdc.gov", "who.int"}
	for _, d := range domains {
		pool = append(pool, strongSupporting(d))
	}
	s := Score(pool)
	assert.GreaterOrEqual(t, s.TrustScore, 85.0)
}

func TestSixHighQualityContradictingYieldsLowTrust(t *testing.T) {
	var pool []EvidenceInput
	domains := []string{"nature.com", "science.org", "nejm.org", "thelancet.com", "cdc.gov", "who.int"}
	for _, d := range domains {
		pool = append(pool, strongContradicting(d))
	}
	s := Score(pool)
	assert.LessOrEqual(t, s.TrustScore, 30.0)
}

func TestOneSupportingOneContradictingStaysInMixedRange(t *testing.T) {
	pool := []EvidenceInput{
		strongSupporting("a.com"),
		strongContradicting("b.com"),
	}
	s := Score(pool)
	assert.GreaterOrEqual(t, s.TrustScore, 15.0)
	assert.LessOrEqual(t, s.TrustScore, 85.0)
}

func TestAuthorityBonusTable(t *testing.T) {
	assert.Equal(t, 4.0, AuthorityBonus("nature.com"))
	assert.Equal(t, 4.0, AuthorityBonus("www.nature.com"))
	assert.Equal(t, 3.0, AuthorityBonus("cdc.gov"))
	assert.Equal(t, 3.0, AuthorityBonus("austin.edu"))
	assert.Equal(t, 2.0, AuthorityBonus("mayoclinic.org"))
	assert.Equal(t, 0.0, AuthorityBonus("randomblog.com"))
}

func TestToGradeThresholds(t *testing.T) {
	assert.Equal(t, GradeAPlus, ToGrade(97))
	assert.Equal(t, GradeA, ToGrade(90))
	assert.Equal(t, GradeBPlus, ToGrade(87))
	assert.Equal(t, GradeB, ToGrade(80))
	assert.Equal(t, GradeCPlus, ToGrade(77))
	assert.Equal(t, GradeC, ToGrade(70))
	assert.Equal(t, GradeD, ToGrade(60))
	assert.Equal(t, GradeF, ToGrade(59.9))
}

func TestVolumeConfidenceLadder(t *testing.T) {
	assert.Equal(t, 1.0, volumeConfidence(6))
	assert.Equal(t, 0.95, volumeConfidence(4))
	assert.Equal(t, 0.85, volumeConfidence(2))
	assert.Equal(t, 0.7, volumeConfidence(1))
}
