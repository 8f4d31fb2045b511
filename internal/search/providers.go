package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// httpDoer is the minimal interface each provider needs from an HTTP
// client; satisfied by *http.Client, including the per-worker clients
// the resource pool hands out.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BingProvider queries the Bing Web Search API.
type BingProvider struct {
	APIKey  string
	Client  httpDoer
	Limiter *rate.Limiter
}

func (p *BingProvider) Name() string { return "bing" }

func (p *BingProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	endpoint := "https://api.bing.microsoft.com/v7.0/search?" + url.Values{
		"q":     {query},
		"count": {strconv.Itoa(maxResults)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("search: bing request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: bing call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: bing returned status %d", resp.StatusCode)
	}

	var parsed struct {
		WebPages struct {
			Value []struct {
				Name    string `json:"name"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
			} `json:"value"`
		} `json:"webPages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: bing decode: %w", err)
	}

	results := make([]Result, 0, len(parsed.WebPages.Value))
	for _, v := range parsed.WebPages.Value {
		results = append(results, Result{
			Title:        v.Name,
			URL:          v.URL,
			Snippet:      v.Snippet,
			SourceDomain: Domain(v.URL),
		})
	}
	return results, nil
}

// GoogleCSEProvider queries the Google Programmable Search (Custom
// Search JSON API).
type GoogleCSEProvider struct {
	APIKey         string
	SearchEngineID string
	Client         httpDoer
	Limiter        *rate.Limiter
}

func (p *GoogleCSEProvider) Name() string { return "google_cse" }

func (p *GoogleCSEProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	endpoint := "https://www.googleapis.com/customsearch/v1?" + url.Values{
		"key": {p.APIKey},
		"cx":  {p.SearchEngineID},
		"q":   {query},
		"num": {strconv.Itoa(clampInt(maxResults, 1, 10))},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("search: google cse request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: google cse call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: google cse returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: google cse decode: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, v := range parsed.Items {
		results = append(results, Result{
			Title:        v.Title,
			URL:          v.Link,
			Snippet:      v.Snippet,
			SourceDomain: Domain(v.Link),
		})
	}
	return results, nil
}

// BraveProvider queries the Brave Search API.
type BraveProvider struct {
	APIKey  string
	Client  httpDoer
	Limiter *rate.Limiter
}

func (p *BraveProvider) Name() string { return "brave" }

func (p *BraveProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	endpoint := "https://api.search.brave.com/res/v1/web/search?" + url.Values{
		"q":     {query},
		"count": {strconv.Itoa(maxResults)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("search: brave request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", p.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: brave call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: brave returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: brave decode: %w", err)
	}

	results := make([]Result, 0, len(parsed.Web.Results))
	for _, v := range parsed.Web.Results {
		results = append(results, Result{
			Title:        v.Title,
			URL:          v.URL,
			Snippet:      v.Description,
			SourceDomain: Domain(v.URL),
		})
	}
	return results, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
