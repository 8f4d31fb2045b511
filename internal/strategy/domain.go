package strategy

import (
	"fmt"
	"strings"
)

// Domain is one of the seven keyword-scored claim domains.
type Domain string

const (
	DomainMedical     Domain = "medical"
	DomainScientific  Domain = "scientific"
	DomainEconomic    Domain = "economic"
	DomainPolicy      Domain = "policy"
	DomainStatistical Domain = "statistical"
	DomainHistorical  Domain = "historical"
	DomainGeneral     Domain = "general"
)

// domainPrecedence lists domains in tie-break order, highest first.
var domainPrecedence = []Domain{
	DomainMedical, DomainScientific, DomainEconomic,
	DomainPolicy, DomainStatistical, DomainHistorical, DomainGeneral,
}

// domainKeywords seeds the keyword-match scoring, a representative
// keyword set per domain.
var domainKeywords = map[Domain][]string{
	DomainMedical: {
		"vaccine", "vaccines", "disease", "autism", "covid", "virus",
		"drug", "medicine", "medical", "health", "hospital", "patient",
		"doctor", "cancer", "treatment", "clinical", "symptom", "infection",
	},
	DomainScientific: {
		"study", "research", "scientist", "science", "experiment",
		"physics", "chemistry", "biology", "climate", "earth", "space",
		"evolution", "gene", "data", "theory", "hypothesis",
	},
	DomainEconomic: {
		"economy", "economic", "inflation", "gdp", "tax", "jobs",
		"unemployment", "market", "trade", "budget", "deficit", "wage",
		"stock", "recession", "investment",
	},
	DomainPolicy: {
		"policy", "law", "regulation", "government", "legislation",
		"bill", "congress", "senate", "election", "vote", "policies",
		"administration", "reform",
	},
	DomainStatistical: {
		"percent", "percentage", "rate", "survey", "poll", "statistics",
		"number", "data", "increase", "decrease", "average", "median",
	},
	DomainHistorical: {
		"history", "historical", "century", "war", "ancient", "founded",
		"empire", "revolution", "decade", "era",
	},
	DomainGeneral: {},
}

// ClassificationResult records a domain classification and the
// reasoning behind it, for the strategy's audit trail.
type ClassificationResult struct {
	Domain    Domain
	Score     int
	Reasoning string
}

// ClassifyDomain scores claimText against each domain's keyword set and
// picks the highest-scoring domain, breaking ties by domainPrecedence.
func ClassifyDomain(claimText string) ClassificationResult {
	lower := strings.ToLower(claimText)
	scores := make(map[Domain]int, len(domainKeywords))
	matched := make(map[Domain][]string, len(domainKeywords))

	for domain, keywords := range domainKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[domain]++
				matched[domain] = append(matched[domain], kw)
			}
		}
	}

	best := DomainGeneral
	bestScore := 0
	for _, domain := range domainPrecedence {
		s := scores[domain]
		if s > bestScore {
			bestScore = s
			best = domain
		}
	}

	var reasoning string
	if bestScore == 0 {
		reasoning = "no domain keywords matched; defaulting to general (precedence tie-break)"
	} else {
		reasoning = fmt.Sprintf(
			"domain %q scored %d via keyword matches [%s]; selected by highest score with precedence tie-break",
			best, bestScore, strings.Join(matched[best], ", "),
		)
	}

	return ClassificationResult{Domain: best, Score: bestScore, Reasoning: reasoning}
}

// methodologyOrder maps each domain to its ordered methodology
// preference list; the strategy generator takes the first three.
var methodologyOrder = map[Domain][]MethodologyTag{
	DomainMedical:     {SystematicReview, PeerReviewed, GovernmentOfficial, Observational},
	DomainScientific:  {PeerReviewed, SystematicReview, Experimental, Observational},
	DomainEconomic:    {GovernmentOfficial, PeerReviewed, Observational, IndependentResearch},
	DomainPolicy:      {GovernmentOfficial, IndependentResearch, Observational, PeerReviewed},
	DomainStatistical: {GovernmentOfficial, Observational, PeerReviewed, IndependentResearch},
	DomainHistorical:  {IndependentResearch, PeerReviewed, GovernmentOfficial, Observational},
	DomainGeneral:     {IndependentResearch, Observational, PeerReviewed, GovernmentOfficial},
}

// MethodologyTagsFor returns the first three methodology tags for
// domain.
func MethodologyTagsFor(domain Domain) []MethodologyTag {
	tags := methodologyOrder[domain]
	if len(tags) > 3 {
		tags = tags[:3]
	}
	out := make([]MethodologyTag, len(tags))
	copy(out, tags)
	return out
}
