package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor extracts the readable body text of an article page.
// Implementations return an error when no meaningful text can be recovered;
// callers are expected to fall back to a simpler strategy.
type ContentExtractor interface {
	ExtractText(pageURL string, html string) (string, error)
}

// ReadabilityExtractor extracts article text using a readability algorithm
// that strips navigation, ads, and boilerplate from the page.
type ReadabilityExtractor struct{}

// NewReadabilityExtractor creates a ReadabilityExtractor.
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

// ExtractText runs readability over the page and returns its plain text.
func (e *ReadabilityExtractor) ExtractText(pageURL string, html string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	text := normalizeText(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("readability found no text content")
	}

	return text, nil
}

// paragraphText joins the visible paragraph texts of a parsed document.
// Used as the fallback when readability extraction yields nothing.
func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return normalizeText(strings.Join(parts, "\n\n"))
}

// normalizeText collapses runs of blank space inside lines while keeping
// paragraph breaks.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}

	joined := strings.Join(out, "\n")
	for strings.Contains(joined, "\n\n\n") {
		joined = strings.ReplaceAll(joined, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(joined)
}
