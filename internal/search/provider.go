// Package search abstracts web-search providers behind one operation:
// search(query, max_results) -> list of {title, url, snippet,
// source_domain}. Provider selection is driven by configuration
// (credential presence), consulted in declared order.
package search

import (
	"context"
	"net/url"
	"strings"
)

// Result is one web-search hit.
type Result struct {
	Title        string
	URL          string
	Snippet      string
	SourceDomain string
}

// Provider is a single web-search backend.
type Provider interface {
	// Name identifies the provider for logging and rate-limiter keying.
	Name() string
	// Search returns up to maxResults hits for query.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Domain extracts the registrable host from a raw URL, lower-cased and
// stripped of a leading "www.". Returns "" if rawURL does not parse.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if len(host) > 4 && host[:4] == "www." {
		host = host[4:]
	}
	return host
}

// Chain consults providers in order, returning the first successful
// non-empty result set. This implements "up to three
// alternative providers consulted in declared order".
type Chain struct {
	providers []Provider
}

// NewChain builds a Chain from providers already filtered down to
// those with credentials present (the caller does the presence check,
// since only it knows which config fields back which provider).
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Search tries each provider in order until one returns results without
// error. If every provider fails, it returns the last error seen.
func (c *Chain) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	var lastErr error
	for _, p := range c.providers {
		results, err := p.Search(ctx, query, maxResults)
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, lastErr
}
