package fanout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// extractedContent is what the page-fetch step produces before it is
// turned into an EvidenceCandidate.
type extractedContent struct {
	Title       string
	MainContent string
	Description string
	Author      string
	PublishDate string
	Domain      string
	WordCount   int
}

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// HTTPDoer is satisfied by *http.Client, including resource-pool
// leased clients.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// fetchAndExtract fetches rawURL and extracts article-shaped content
// from it by walking the DOM for content-bearing elements, falling back
// to concatenated paragraph text when nothing matches.
func fetchAndExtract(ctx context.Context, client HTTPDoer, rawURL string) (extractedContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return extractedContent{}, fmt.Errorf("fanout: build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; factcheck-bot/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return extractedContent{}, fmt.Errorf("fanout: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return extractedContent{}, fmt.Errorf("fanout: %s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return extractedContent{}, fmt.Errorf("fanout: read body: %w", err)
	}

	return parseHTML(string(body))
}

// contentSelectorHints are class/id substrings that mark a
// content-bearing element. The first article, main, or hinted element
// in document order supplies the text, with a paragraph-text fallback
// if none match.
var contentSelectorHints = []string{"article", "main", "content", "post", "story"}

func parseHTML(body string) (extractedContent, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return extractedContent{}, fmt.Errorf("fanout: parse html: %w", err)
	}

	var title, description, author, publishDate string
	var bestText string

	var visit func(*html.Node)
	var paragraphs []string

	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = collectText(n)
				}
			case "meta":
				name, content := metaAttrs(n)
				switch strings.ToLower(name) {
				case "description", "og:description":
					if description == "" {
						description = content
					}
				case "author", "article:author":
					if author == "" {
						author = content
					}
				case "article:published_time", "date", "pubdate", "og:published_time":
					if publishDate == "" {
						publishDate = content
					}
				}
			case "p":
				text := strings.TrimSpace(collectText(n))
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
			case "article", "main":
				if bestText == "" {
					bestText = collectText(n)
				}
			default:
				if bestText == "" && hasContentClass(n) {
					bestText = collectText(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	content := bestText
	if strings.TrimSpace(content) == "" {
		content = strings.Join(paragraphs, "\n\n")
	}
	content = normalizeWhitespace(content)
	if len(content) > MaxExtractedChars {
		content = content[:MaxExtractedChars]
	}

	return extractedContent{
		Title:       strings.TrimSpace(title),
		MainContent: content,
		Description: strings.TrimSpace(description),
		Author:      strings.TrimSpace(author),
		PublishDate: strings.TrimSpace(publishDate),
		WordCount:   len(strings.Fields(content)),
	}, nil
}

func hasContentClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" && attr.Key != "id" {
			continue
		}
		lower := strings.ToLower(attr.Val)
		for _, hint := range contentSelectorHints {
			if strings.Contains(lower, hint) {
				return true
			}
		}
	}
	return false
}

func metaAttrs(n *html.Node) (name, content string) {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name", "property":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	return name, content
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func normalizeWhitespace(s string) string {
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
