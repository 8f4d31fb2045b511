package fanout

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"factcheck/internal/logging"
	"factcheck/internal/search"
	"factcheck/internal/strategy"
)

// SearchProvider is the subset of search.Chain's behavior fanout
// depends on, so tests can fake it without a real Chain.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// Fanout executes a SearchStrategy's queries and produces a
// deduplicated list of EvidenceCandidate.
type Fanout struct {
	Provider          SearchProvider
	Client            HTTPDoer
	MaxSearchWorkers  int
	MaxExtractWorkers int
	TopK              int
	FanoutDeadline    time.Duration
	PerRequestTimeout time.Duration

	// LeaseClient, when set, supplies the extraction client for each
	// worker slot, so a resource pool can hand out isolated instances
	// per slot. Unset, every worker shares Client.
	LeaseClient func(workerSlot int) HTTPDoer
}

// New builds a Fanout with reasonable defaults filled in for zero fields.
func New(provider SearchProvider, client HTTPDoer) *Fanout {
	return &Fanout{
		Provider:          provider,
		Client:            client,
		MaxSearchWorkers:  4,
		MaxExtractWorkers: 6,
		TopK:              DefaultTopK,
		FanoutDeadline:    DefaultFanoutDeadline,
		PerRequestTimeout: DefaultPerRequestTimeout,
	}
}

// Run executes strat's queries concurrently, merges and deduplicates
// results, extracts page content for the top-K survivors, and returns
// deterministic EvidenceCandidate output plus any non-fatal warnings.
func (f *Fanout) Run(ctx context.Context, claimID string, strat *strategy.SearchStrategy) ([]EvidenceCandidate, []string) {
	log := logging.With(claimID, "fanout")
	ctx, cancel := context.WithTimeout(ctx, f.deadline())
	defer cancel()

	var (
		mu       sync.Mutex
		warnings []string
		hits     []searchHit
	)
	addWarning := func(msg string) {
		mu.Lock()
		warnings = append(warnings, msg)
		mu.Unlock()
	}

	sem := semaphore.NewWeighted(int64(f.workers(f.MaxSearchWorkers)))
	var wg sync.WaitGroup
	for _, q := range strat.Queries {
		q := q
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			results, err := f.Provider.Search(ctx, q.Text, q.MaxResults)
			if err != nil {
				addWarning("search failed for query " + q.Text + ": " + err.Error())
				log.Debug("search failed for query %q: %v", q.Text, err)
				return
			}
			mu.Lock()
			for pos, r := range results {
				hits = append(hits, searchHit{
					title:         r.Title,
					url:           r.URL,
					snippet:       r.Snippet,
					domain:        r.SourceDomain,
					queryPriority: q.Priority,
					position:      pos,
					foundViaQuery: q.Text,
				})
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	deduped := dedupeByURL(hits)
	top := selectTopK(deduped, f.topK())

	candidates := f.extractAll(ctx, claimID, top, addWarning)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateLess(candidates[i], candidates[j], top)
	})

	return candidates, warnings
}

func (f *Fanout) deadline() time.Duration {
	if f.FanoutDeadline > 0 {
		return f.FanoutDeadline
	}
	return DefaultFanoutDeadline
}

func (f *Fanout) workers(n int) int {
	if n > 0 {
		return n
	}
	return 1
}

func (f *Fanout) topK() int {
	if f.TopK > 0 {
		return f.TopK
	}
	return DefaultTopK
}

func (f *Fanout) requestTimeout() time.Duration {
	if f.PerRequestTimeout > 0 {
		return f.PerRequestTimeout
	}
	return DefaultPerRequestTimeout
}

// canonicalURL lower-cases scheme/host and strips a trailing slash, so
// trivially-different URLs to the same resource dedupe together.
func canonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Fragment = ""
	return u.String()
}

func dedupeByURL(hits []searchHit) []searchHit {
	seen := make(map[string]bool, len(hits))
	out := make([]searchHit, 0, len(hits))
	for _, h := range hits {
		key := canonicalURL(h.url)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

// combinedScore is query priority times result-position decay.
func combinedScore(h searchHit) float64 {
	decay := 1.0 / float64(1+h.position)
	return h.queryPriority * decay
}

func selectTopK(hits []searchHit, k int) []searchHit {
	sort.SliceStable(hits, func(i, j int) bool {
		return combinedScore(hits[i]) > combinedScore(hits[j])
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func (f *Fanout) extractAll(ctx context.Context, claimID string, hits []searchHit, addWarning func(string)) []EvidenceCandidate {
	log := logging.With(claimID, "fanout")
	sem := semaphore.NewWeighted(int64(f.workers(f.MaxExtractWorkers)))
	var wg sync.WaitGroup
	var mu sync.Mutex
	candidates := make([]EvidenceCandidate, 0, len(hits))

	for i, h := range hits {
		i, h := i, h
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			reqCtx, cancel := context.WithTimeout(ctx, f.requestTimeout())
			defer cancel()

			client := f.clientForSlot(i % f.workers(f.MaxExtractWorkers))
			candidate, ok := f.buildCandidate(reqCtx, client, h)
			if !ok {
				addWarning("extraction failed for " + h.url)
				log.Debug("dropped candidate %s after extraction failure", h.url)
				return
			}

			mu.Lock()
			candidates = append(candidates, candidate)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return candidates
}

func (f *Fanout) clientForSlot(slot int) HTTPDoer {
	if f.LeaseClient != nil {
		if c := f.LeaseClient(slot); c != nil {
			return c
		}
	}
	return f.Client
}

func (f *Fanout) buildCandidate(ctx context.Context, client HTTPDoer, h searchHit) (EvidenceCandidate, bool) {
	extracted, err := fetchAndExtract(ctx, client, h.url)
	domain := h.domain
	if domain == "" {
		domain = search.Domain(h.url)
	}

	// Per-URL timeout or HTTP error: the candidate is dropped, never
	// the whole claim.
	if err != nil {
		return EvidenceCandidate{}, false
	}

	if extracted.WordCount < MinWordsForPrimaryPath {
		// Too-thin content from the primary extraction path: fall back
		// to the search snippet as candidate text.
		title := h.title
		if extracted.Title != "" {
			title = extracted.Title
		}
		return EvidenceCandidate{
			Text:          h.snippet,
			SourceURL:     h.url,
			SourceDomain:  domain,
			SourceTitle:   title,
			FoundViaQuery: h.foundViaQuery,
			RawRelevance:  SnippetFallbackRelevance,
		}, true
	}

	title := h.title
	if extracted.Title != "" {
		title = extracted.Title
	}
	return EvidenceCandidate{
		Text:          extracted.MainContent,
		SourceURL:     h.url,
		SourceDomain:  domain,
		SourceTitle:   title,
		FoundViaQuery: h.foundViaQuery,
		RawRelevance:  1.0,
		Description:   extracted.Description,
		Author:        extracted.Author,
		PublishDate:   extracted.PublishDate,
	}, true
}

// candidateLess implements the deterministic ordering guarantee: sort
// by query priority desc, then result position asc, then URL asc.
func candidateLess(a, b EvidenceCandidate, hits []searchHit) bool {
	pa, posA := priorityAndPosition(a, hits)
	pb, posB := priorityAndPosition(b, hits)
	if pa != pb {
		return pa > pb
	}
	if posA != posB {
		return posA < posB
	}
	return a.SourceURL < b.SourceURL
}

func priorityAndPosition(c EvidenceCandidate, hits []searchHit) (float64, int) {
	for _, h := range hits {
		if h.url == c.SourceURL {
			return h.queryPriority, h.position
		}
	}
	return 0, 0
}

var _ HTTPDoer = (*http.Client)(nil)
