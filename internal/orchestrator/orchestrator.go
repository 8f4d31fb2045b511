package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"factcheck/internal/claim"
	"factcheck/internal/consensus"
	"factcheck/internal/evaluator"
	"factcheck/internal/fanout"
	"factcheck/internal/logging"
	"factcheck/internal/scoring"
	"factcheck/internal/strategy"
)

// StrategyGenerator is the subset of strategy.Generator's behavior the
// orchestrator depends on.
type StrategyGenerator interface {
	Generate(claimText string) (*strategy.SearchStrategy, error)
}

// Fanner is the subset of fanout.Fanout's behavior the orchestrator
// depends on.
type Fanner interface {
	Run(ctx context.Context, claimID string, strat *strategy.SearchStrategy) ([]fanout.EvidenceCandidate, []string)
}

// Evaluators is the subset of evaluator.DualEvaluator's behavior the
// orchestrator depends on.
type Evaluators interface {
	Run(ctx context.Context, claimID, claimText string, candidates []fanout.EvidenceCandidate) (primary, secondary []evaluator.ProcessedEvidence, err error)
}

// Orchestrator drives claim-level and within-claim parallelism.
type Orchestrator struct {
	Strategy StrategyGenerator
	Fanout   Fanner
	Dual     Evaluators

	MaxClaimWorkers int
	ClaimDeadline   time.Duration

	// Sequential disables the claim plane: claims are processed one at
	// a time in input order. Within-claim concurrency (evaluator and
	// I/O planes) is unaffected.
	Sequential bool
}

// New builds an Orchestrator with reasonable defaults for zero fields.
func New(strat StrategyGenerator, fan Fanner, dual Evaluators) *Orchestrator {
	return &Orchestrator{
		Strategy:        strat,
		Fanout:          fan,
		Dual:            dual,
		MaxClaimWorkers: 4,
		ClaimDeadline:   DefaultClaimDeadline,
	}
}

// Run drives the full pipeline for every claim concurrently, preserving
// input order in the output regardless of which claim finishes first.
func (o *Orchestrator) Run(ctx context.Context, claims []claim.Claim) (*TrustCapsule, error) {
	results := make([]ClaimScore, len(claims))

	if o.Sequential {
		for i, c := range claims {
			results[i] = o.processClaim(ctx, c)
		}
		return assembleCapsule(results), nil
	}

	sem := semaphore.NewWeighted(int64(o.claimWorkers()))
	var wg sync.WaitGroup
	for i, c := range claims {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = ClaimScore{ClaimText: c.Text, Err: err}
				return
			}
			defer sem.Release(1)
			results[i] = o.processClaim(ctx, c)
		}()
	}
	wg.Wait()

	return assembleCapsule(results), nil
}

func (o *Orchestrator) claimWorkers() int {
	if o.MaxClaimWorkers > 0 {
		return o.MaxClaimWorkers
	}
	return 4
}

func (o *Orchestrator) claimDeadline() time.Duration {
	if o.ClaimDeadline > 0 {
		return o.ClaimDeadline
	}
	return DefaultClaimDeadline
}

// processClaim runs strategy generation, fanout, dual evaluation,
// consensus, and scoring for one claim, isolating its failures from
// every other claim running concurrently.
func (o *Orchestrator) processClaim(ctx context.Context, c claim.Claim) ClaimScore {
	claimID := uuid.NewString()
	log := logging.With(claimID, "orchestrator")

	ctx, cancel := context.WithTimeout(ctx, o.claimDeadline())
	defer cancel()

	var warnings []string

	strat, err := o.generateStrategy(ctx, c.Text)
	if err != nil {
		log.Error("strategy generation failed: %v", err)
		return ClaimScore{
			ClaimText:        c.Text,
			EvidenceGrade:    scoring.GradeF,
			UncertaintyNotes: "strategy generation failed: " + err.Error(),
			Err:              err,
		}
	}

	candidates, fanoutWarnings := o.Fanout.Run(ctx, claimID, strat)
	warnings = append(warnings, fanoutWarnings...)

	if len(candidates) == 0 {
		log.Info("no evidence candidates found")
		return emptyPoolScore(c.Text, warnings, "no evidence candidates found")
	}

	dualCtx, dualCancel := context.WithTimeout(ctx, DualEvalStageDeadline)
	primary, secondary, err := o.Dual.Run(dualCtx, claimID, c.Text, candidates)
	dualCancel()
	if err != nil {
		log.Error("dual evaluation failed: %v", err)
		warnings = append(warnings, "dual evaluation failed: "+err.Error())
		return emptyPoolScore(c.Text, warnings, "dual evaluation failed")
	}

	pool, report := consensus.Combine(primary, secondary)
	if len(pool) == 0 {
		return emptyPoolScore(c.Text, warnings, "consensus produced no evidence")
	}

	claimScore := scoring.Score(toScoringInputs(pool))

	return ClaimScore{
		ClaimText:          c.Text,
		TrustScore:         claimScore.TrustScore,
		EvidenceGrade:      claimScore.EvidenceGrade,
		EvidenceGradeScore: claimScore.EvidenceGradeScore,
		ConsensusStance:    string(report.ConsensusStance),
		DisagreementLevel:  report.DisagreementLevel,
		UncertaintyNotes:   report.UncertaintyNotes,
		Supporting:         summariesForStance(pool, evaluator.Supporting),
		Contradicting:      summariesForStance(pool, evaluator.Contradicting),
		Neutral:            summariesForStance(pool, evaluator.Neutral),
		Warnings:           warnings,
	}
}

func (o *Orchestrator) generateStrategy(ctx context.Context, claimText string) (*strategy.SearchStrategy, error) {
	stratCtx, cancel := context.WithTimeout(ctx, StrategyStageDeadline)
	defer cancel()

	type result struct {
		strat *strategy.SearchStrategy
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := o.Strategy.Generate(claimText)
		ch <- result{s, err}
	}()

	select {
	case r := <-ch:
		return r.strat, r.err
	case <-stratCtx.Done():
		return nil, fmt.Errorf("strategy: %w", stratCtx.Err())
	}
}

func emptyPoolScore(claimText string, warnings []string, reason string) ClaimScore {
	return ClaimScore{
		ClaimText:          claimText,
		TrustScore:         0,
		EvidenceGrade:      scoring.GradeF,
		EvidenceGradeScore: 0,
		ConsensusStance:    "neutral",
		UncertaintyNotes:   reason,
		Warnings:           warnings,
	}
}

func toScoringInputs(pool []evaluator.ProcessedEvidence) []scoring.EvidenceInput {
	out := make([]scoring.EvidenceInput, 0, len(pool))
	for _, e := range pool {
		out = append(out, scoring.EvidenceInput{
			Stance:       string(e.Stance),
			Relevance:    e.Relevance,
			Confidence:   e.Confidence,
			QualityScore: e.QualityScore,
			SourceDomain: e.SourceDomain,
			SourceURL:    e.SourceURL,
			SourceTitle:  e.SourceTitle,
			ContentChars: len(e.Text),
			HasTitle:     e.SourceTitle != "",
			HasDomain:    e.SourceDomain != "",
		})
	}
	return out
}

func summariesForStance(pool []evaluator.ProcessedEvidence, stance evaluator.Stance) []EvidenceSummary {
	var out []EvidenceSummary
	for _, e := range pool {
		if e.Stance != stance {
			continue
		}
		out = append(out, EvidenceSummary{
			Statement:        e.Reasoning,
			SourceTitle:      e.SourceTitle,
			SourceDomain:     e.SourceDomain,
			SourceURL:        e.SourceURL,
			Stance:           string(e.Stance),
			RelevanceScore:   e.Relevance,
			HighlightText:    e.KeyExcerpt,
			HighlightContext: e.Text,
			PublishDate:      e.PublishDate,
		})
	}
	return out
}
