package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	name    string
	results []Result
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	return f.results, f.err
}

func TestDomainStripsWWWAndLowercases(t *testing.T) {
	assert.Equal(t, "nature.com", Domain("https://www.nature.com/articles/1"))
	assert.Equal(t, "cdc.gov", Domain("http://cdc.gov/foo"))
	assert.Equal(t, "nature.com", Domain("https://WWW.Nature.COM/articles/1"))
	assert.Equal(t, "", Domain("::not a url::"))
}

func TestChainFallsThroughOnError(t *testing.T) {
	p1 := &fakeProvider{name: "a", err: errors.New("boom")}
	p2 := &fakeProvider{name: "b", results: []Result{{Title: "ok", URL: "https://example.com"}}}
	c := NewChain(p1, p2)

	results, err := c.Search(context.Background(), "q", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].Title)
}

func TestChainFallsThroughOnEmptyResults(t *testing.T) {
	p1 := &fakeProvider{name: "a", results: nil}
	p2 := &fakeProvider{name: "b", results: []Result{{Title: "ok"}}}
	c := NewChain(p1, p2)

	results, err := c.Search(context.Background(), "q", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestChainReturnsLastErrorWhenAllFail(t *testing.T) {
	p1 := &fakeProvider{name: "a", err: errors.New("first")}
	p2 := &fakeProvider{name: "b", err: errors.New("second")}
	c := NewChain(p1, p2)

	_, err := c.Search(context.Background(), "q", 5)
	assert.EqualError(t, err, "second")
}
