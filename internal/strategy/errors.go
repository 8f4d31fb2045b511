package strategy

import "fmt"

// GenerationError is an unrecoverable compliance failure, fatal to the
// one claim it concerns.
type GenerationError struct {
	ClaimText string
	Reason    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("strategy: generation failed for claim %q: %s", e.ClaimText, e.Reason)
}
