package fanout

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factcheck/internal/search"
	"factcheck/internal/strategy"
)

type fakeProvider struct {
	results map[string][]search.Result
}

func (f *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	return f.results[query], nil
}

type fakeHTTPClient struct {
	body string
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func strat(queries ...strategy.Query) *strategy.SearchStrategy {
	return &strategy.SearchStrategy{Queries: queries}
}

func TestRunDedupesAndOrdersDeterministically(t *testing.T) {
	provider := &fakeProvider{results: map[string][]search.Result{
		"claim": {
			{Title: "A", URL: "https://example.com/a", Snippet: "snippet a", SourceDomain: "example.com"},
			{Title: "B", URL: "https://example.com/a/", Snippet: "dup", SourceDomain: "example.com"},
			{Title: "C", URL: "https://other.com/c", Snippet: "snippet c", SourceDomain: "other.com"},
		},
	}}
	client := &fakeHTTPClient{body: "<html><body><article>" + strings.Repeat("word ", 60) + "</article></body></html>"}
	f := New(provider, client)

	strategy := strat(strategy.Query{Text: "claim", Priority: 1.0, MaxResults: 10, MethodologyTag: "peer_reviewed"})

	candidates, warnings := f.Run(context.Background(), "claim-1", strategy)
	require.Len(t, candidates, 2)
	assert.Empty(t, warnings)

	urls := map[string]bool{}
	for _, c := range candidates {
		urls[c.SourceURL] = true
	}
	assert.True(t, urls["https://example.com/a"] || urls["https://example.com/a/"])
	assert.True(t, urls["https://other.com/c"])

	// Same query priority, so result position decides: a (0) before c (2).
	assert.Equal(t, "https://example.com/a", candidates[0].SourceURL)
	assert.Equal(t, "https://other.com/c", candidates[1].SourceURL)
}

func TestRunFallsBackToSnippetOnThinContent(t *testing.T) {
	provider := &fakeProvider{results: map[string][]search.Result{
		"claim": {{Title: "A", URL: "https://example.com/a", Snippet: "short snippet", SourceDomain: "example.com"}},
	}}
	client := &fakeHTTPClient{body: "too short"}
	f := New(provider, client)
	strategy := strat(strategy.Query{Text: "claim", Priority: 1.0, MaxResults: 10, MethodologyTag: "peer_reviewed"})

	candidates, _ := f.Run(context.Background(), "claim-1", strategy)
	require.Len(t, candidates, 1)
	assert.Equal(t, "short snippet", candidates[0].Text)
	assert.Equal(t, SnippetFallbackRelevance, candidates[0].RawRelevance)
}

type failingHTTPClient struct{}

func (c *failingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRunDropsCandidateOnFetchError(t *testing.T) {
	provider := &fakeProvider{results: map[string][]search.Result{
		"claim": {{Title: "A", URL: "https://example.com/a", Snippet: "snippet", SourceDomain: "example.com"}},
	}}
	f := New(provider, &failingHTTPClient{})
	strategy := strat(strategy.Query{Text: "claim", Priority: 1.0, MaxResults: 10, MethodologyTag: "peer_reviewed"})

	candidates, warnings := f.Run(context.Background(), "claim-1", strategy)
	assert.Empty(t, candidates)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "https://example.com/a")
}

func TestRunExtractsPublishDateFromMeta(t *testing.T) {
	provider := &fakeProvider{results: map[string][]search.Result{
		"claim": {{Title: "A", URL: "https://example.com/a", Snippet: "snippet", SourceDomain: "example.com"}},
	}}
	body := `<html><head>` +
		`<meta property="article:published_time" content="2024-03-15T10:00:00Z">` +
		`</head><body><article>` + strings.Repeat("word ", 60) + `</article></body></html>`
	f := New(provider, &fakeHTTPClient{body: body})
	strategy := strat(strategy.Query{Text: "claim", Priority: 1.0, MaxResults: 10, MethodologyTag: "peer_reviewed"})

	candidates, _ := f.Run(context.Background(), "claim-1", strategy)
	require.Len(t, candidates, 1)
	assert.Equal(t, "2024-03-15T10:00:00Z", candidates[0].PublishDate)
}
