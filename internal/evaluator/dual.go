package evaluator

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"factcheck/internal/fanout"
)

// DualEvaluator runs the primary and secondary evaluators concurrently
// and applies the shared filter floor and
// ordering contract to each evaluator's output independently.
type DualEvaluator struct {
	Primary   *Evaluator
	Secondary *Evaluator

	// MaxWorkers bounds the evaluator plane. At the default of 2 both
	// evaluators run concurrently; at 1 they run back to back.
	MaxWorkers int
}

// NewDual builds a DualEvaluator from two independent Evaluators.
func NewDual(primary, secondary *Evaluator) *DualEvaluator {
	return &DualEvaluator{Primary: primary, Secondary: secondary, MaxWorkers: 2}
}

// Run scores candidates with both evaluators in parallel and returns
// each evaluator's filtered, ordered ProcessedEvidence set.
func (d *DualEvaluator) Run(ctx context.Context, claimID, claimText string, candidates []fanout.EvidenceCandidate) (primary, secondary []ProcessedEvidence, err error) {
	g, ctx := errgroup.WithContext(ctx)
	if d.MaxWorkers > 0 {
		g.SetLimit(d.MaxWorkers)
	}

	g.Go(func() error {
		primary = finalize(d.Primary.Evaluate(ctx, claimID, claimText, candidates))
		return nil
	})
	g.Go(func() error {
		secondary = finalize(d.Secondary.Evaluate(ctx, claimID, claimText, candidates))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return primary, secondary, nil
}

// finalize applies the filter floor then the ordering contract.
func finalize(evidence []ProcessedEvidence) []ProcessedEvidence {
	filtered := make([]ProcessedEvidence, 0, len(evidence))
	for _, e := range evidence {
		if e.PassesFilterFloor() {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].rankKey() != filtered[j].rankKey() {
			return filtered[i].rankKey() > filtered[j].rankKey()
		}
		return filtered[i].QualityScore > filtered[j].QualityScore
	})
	return filtered
}
