package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"factcheck/internal/fanout"
	"factcheck/internal/llm"
	"factcheck/internal/logging"
)

// BatchSize is the maximum number of candidates sent to the evaluator
// per LLM request.
const BatchSize = 4

// Evaluator scores a batch of EvidenceCandidate against one claim using
// an llm.Client, applying the mandatory hard rules and the Quality
// Assessor to every result.
type Evaluator struct {
	ID     ID
	Client llm.Client
}

// New builds an Evaluator bound to id and an llm.Client. Two Evaluators
// built from two distinct Clients (or the same Client with distinct
// prompts/temperature) are what calls "logically independent
// evaluator instances".
func New(id ID, client llm.Client) *Evaluator {
	return &Evaluator{ID: id, Client: client}
}

// verdictJSON is the wire shape one evaluator call returns per
// candidate, indexed to match the batch's input order.
type verdictJSON struct {
	Index      int     `json:"index"`
	Relevance  float64 `json:"relevance"`
	Stance     string  `json:"stance"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	KeyExcerpt string  `json:"key_excerpt"`
}

// Evaluate scores candidates against claimText, batching BatchSize at a
// time, retrying a failed batch in single-item mode once, and falling
// back to a keyword-overlap scorer if even that fails.
func (e *Evaluator) Evaluate(ctx context.Context, claimID, claimText string, candidates []fanout.EvidenceCandidate) []ProcessedEvidence {
	log := logging.With(claimID, fmt.Sprintf("evaluator-%s", e.ID))
	out := make([]ProcessedEvidence, 0, len(candidates))

	for start := 0; start < len(candidates); start += BatchSize {
		end := start + BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		verdicts, err := e.evaluateBatch(ctx, claimText, batch)
		if err != nil {
			log.Debug("batch parse failed, retrying single-item: %v", err)
			verdicts = e.evaluateSingleItemFallback(ctx, log, claimText, batch)
		}

		for i, cand := range batch {
			v := verdicts[i]
			finalStance := applyHardRules(claimText, cand.Text, Stance(v.Stance), v.Confidence)
			out = append(out, ProcessedEvidence{
				CandidateIndex: start + i,
				EvaluatorID:    e.ID,
				SourceURL:      cand.SourceURL,
				SourceDomain:   cand.SourceDomain,
				SourceTitle:    cand.SourceTitle,
				PublishDate:    cand.PublishDate,
				Text:           cand.Text,
				Relevance:      v.Relevance,
				Stance:         finalStance,
				Confidence:     v.Confidence,
				Reasoning:      v.Reasoning,
				KeyExcerpt:     truncateExcerpt(v.KeyExcerpt, cand.Text),
				QualityScore:   QualityScore(cand.Text),
			})
		}
	}

	return out
}

func (e *Evaluator) evaluateBatch(ctx context.Context, claimText string, batch []fanout.EvidenceCandidate) ([]verdictJSON, error) {
	prompt := buildBatchPrompt(claimText, batch)
	raw, err := e.Client.Generate(ctx, systemPrompt, prompt, 2000, 0.0)
	if err != nil {
		return nil, fmt.Errorf("evaluator: llm call: %w", err)
	}

	verdicts, err := parseVerdicts(raw, len(batch))
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return verdicts, nil
}

func (e *Evaluator) evaluateSingleItemFallback(ctx context.Context, log *logging.Logger, claimText string, batch []fanout.EvidenceCandidate) []verdictJSON {
	out := make([]verdictJSON, len(batch))
	for i, cand := range batch {
		prompt := buildBatchPrompt(claimText, []fanout.EvidenceCandidate{cand})
		raw, err := e.Client.Generate(ctx, systemPrompt, prompt, 800, 0.0)
		if err == nil {
			if verdicts, perr := parseVerdicts(raw, 1); perr == nil {
				v := verdicts[0]
				v.Index = i
				out[i] = v
				continue
			}
		}
		log.Debug("single-item retry failed for candidate %d, falling back to keyword scorer", i)
		out[i] = keywordFallback(claimText, cand, i)
	}
	return out
}

// keywordFallback implements the EvaluatorParseError recovery
// path: a neutral verdict at confidence 0.4, scored only by whether the
// candidate text shares content words with the claim.
func keywordFallback(claimText string, cand fanout.EvidenceCandidate, index int) verdictJSON {
	overlap := keywordOverlap(claimText, cand.Text)
	return verdictJSON{
		Index:      index,
		Relevance:  overlap,
		Stance:     string(Neutral),
		Confidence: 0.4,
		Reasoning:  "keyword-overlap fallback after evaluator parse failure",
		KeyExcerpt: truncateExcerpt("", cand.Text),
	}
}

func keywordOverlap(a, b string) float64 {
	aw := contentWords(a)
	if len(aw) == 0 {
		return 0
	}
	bSet := make(map[string]bool)
	for _, w := range contentWords(b) {
		bSet[w] = true
	}
	hits := 0
	for _, w := range aw {
		if bSet[w] {
			hits++
		}
	}
	return clamp(float64(hits)/float64(len(aw))*100, 0, 100)
}

func parseVerdicts(raw string, expected int) ([]verdictJSON, error) {
	cleaned := extractJSON(raw)

	var verdicts []verdictJSON
	if err := json.Unmarshal([]byte(cleaned), &verdicts); err != nil {
		// Single-item mode returns a bare object, not an array.
		var single verdictJSON
		if serr := json.Unmarshal([]byte(cleaned), &single); serr == nil {
			verdicts = []verdictJSON{single}
		} else {
			return nil, err
		}
	}
	if len(verdicts) != expected {
		return nil, fmt.Errorf("expected %d verdicts, got %d", expected, len(verdicts))
	}
	return reorderByIndex(verdicts), nil
}

// reorderByIndex puts verdicts back in batch-input order when the
// evaluator returned a valid index permutation; otherwise the response
// order stands.
func reorderByIndex(verdicts []verdictJSON) []verdictJSON {
	seen := make(map[int]bool, len(verdicts))
	for _, v := range verdicts {
		if v.Index < 0 || v.Index >= len(verdicts) || seen[v.Index] {
			return verdicts
		}
		seen[v.Index] = true
	}
	out := make([]verdictJSON, len(verdicts))
	for _, v := range verdicts {
		out[v.Index] = v
	}
	return out
}

// extractJSON strips a markdown code fence around a JSON payload
// before parsing.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncateExcerpt(proposed, candidateText string) string {
	excerpt := proposed
	if excerpt == "" || !strings.Contains(candidateText, excerpt) {
		excerpt = candidateText
	}
	excerpt = strings.ReplaceAll(excerpt, `"`, `\"`)
	if len(excerpt) > 100 {
		excerpt = excerpt[:100]
	}
	return excerpt
}

const systemPrompt = `You are an evidence evaluator for a fact-checking system. For each
numbered candidate, assess how relevant it is to the claim and what
stance it takes (supporting, contradicting, neutral). Respond with a
JSON array, one object per candidate, each with fields: index, relevance
(0-100), stance, confidence (0-1), reasoning, key_excerpt (a short
direct quote from the candidate, at most 100 characters).`

func buildBatchPrompt(claimText string, batch []fanout.EvidenceCandidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Claim: %s\n\nCandidates:\n", claimText)
	for i, c := range batch {
		fmt.Fprintf(&sb, "[%d] source=%s title=%q\n%s\n\n", i, c.SourceDomain, c.SourceTitle, c.Text)
	}
	return sb.String()
}
