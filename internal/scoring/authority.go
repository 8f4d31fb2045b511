package scoring

import "strings"

// AuthorityBonus maps recognized high-authority domain classes
// (government, academic, premier journals, medical institutions) to
// their bonus points.
func AuthorityBonus(domain string) float64 {
	d := strings.ToLower(domain)
	switch {
	case hasSuffix(d, "nature.com", "science.org", "nejm.org", "thelancet.com"):
		return 4
	case hasSuffix(d, "gov", "edu", "who.int"):
		return 3
	case hasSuffix(d, "pmc.ncbi.nlm.nih.gov"):
		return 3
	case hasSuffix(d, "mayoclinic.org", "hopkinsmedicine.org", "clevelandclinic.org"):
		return 2
	default:
		return 0
	}
}

func hasSuffix(domain string, suffixes ...string) bool {
	for _, s := range suffixes {
		if domain == s || strings.HasSuffix(domain, "."+s) {
			return true
		}
	}
	return false
}
