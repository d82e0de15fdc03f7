// Package discover finds candidate article links on a site's index pages.
// It scans the start page for article links, follows "next"/"older" pagination
// anchors up to a bound, and returns an ordered, deduplicated frontier.
package discover

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newscrawl/internal/infra/fetcher"
)

// Config holds the configuration for link discovery.
type Config struct {
	// ArticlePathSegment classifies a URL as an article link when its path
	// contains this literal segment (e.g. "/content/").
	ArticlePathSegment string

	// MaxPages bounds pagination: the start page plus at most MaxPages-1
	// follow-up index pages.
	MaxPages int
}

// Discoverer extracts article links from paginated index pages.
type Discoverer struct {
	fetcher fetcher.PageFetcher
	config  Config
	logger  *slog.Logger
}

// New creates a Discoverer using the given fetcher for page retrieval.
func New(f fetcher.PageFetcher, config Config, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{fetcher: f, config: config, logger: logger}
}

// paginationLabels are the anchor texts that mark a link to an older index page.
var paginationLabels = map[string]bool{
	"next":  true,
	"older": true,
}

// DiscoverLinks fetches the start page and its pagination trail and returns
// the article links found, in first-seen order without duplicates.
//
// Only the start page fetch is fatal: a failed pagination fetch is logged and
// skipped so one broken page cannot empty the whole frontier.
func (d *Discoverer) DiscoverLinks(ctx context.Context, startURL string) ([]string, error) {
	html, err := d.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index page %s: %w", startURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse index page %s: %w", startURL, err)
	}

	var links []string
	seen := make(map[string]bool)
	appendLinks(&links, seen, d.extractArticleLinks(doc, startURL))

	for _, pageURL := range d.paginationTargets(doc, startURL) {
		pageHTML, err := d.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			d.logger.Warn("pagination fetch failed, skipping page",
				slog.String("page_url", pageURL),
				slog.Any("error", err))
			continue
		}

		pageDoc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
		if err != nil {
			d.logger.Warn("pagination page parse failed, skipping page",
				slog.String("page_url", pageURL),
				slog.Any("error", err))
			continue
		}
		appendLinks(&links, seen, d.extractArticleLinks(pageDoc, pageURL))
	}

	d.logger.Info("index links collected",
		slog.String("start_url", startURL),
		slog.Int("count", len(links)))
	return links, nil
}

// extractArticleLinks returns the absolute article URLs found on the page,
// in document order, duplicates included.
func (d *Discoverer) extractArticleLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var found []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		absolute := resolveURL(base, href)
		if absolute == "" {
			return
		}
		if d.isArticleLink(absolute) {
			found = append(found, absolute)
		}
	})
	return found
}

// paginationTargets returns the absolute URLs of "next"/"older" anchors on the
// start page, capped at MaxPages-1.
func (d *Discoverer) paginationTargets(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	budget := d.config.MaxPages - 1
	if budget <= 0 {
		return nil
	}

	var targets []string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(s.Text()))
		if !paginationLabels[label] {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		if absolute := resolveURL(base, href); absolute != "" {
			targets = append(targets, absolute)
		}
		return len(targets) < budget
	})
	return targets
}

// isArticleLink reports whether the URL's path contains the article segment.
func (d *Discoverer) isArticleLink(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(parsed.Path, d.config.ArticlePathSegment)
}

// resolveURL resolves href against base, returning "" for unparseable hrefs.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// appendLinks appends candidates not yet seen, preserving first-seen order.
func appendLinks(links *[]string, seen map[string]bool, candidates []string) {
	for _, link := range candidates {
		if seen[link] {
			continue
		}
		seen[link] = true
		*links = append(*links, link)
	}
}
