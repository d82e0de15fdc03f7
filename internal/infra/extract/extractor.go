package extract

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"newscrawl/internal/domain/entity"
	"newscrawl/internal/utils/text"

	"github.com/PuerkitoBio/goquery"
)

// Config holds the extraction settings.
type Config struct {
	// ArticlePathSegment is the URL path fragment that marks a link
	// as pointing to another article, used for related-article discovery.
	ArticlePathSegment string
}

// ArticleExtractor builds an Article from a fetched HTML page.
// Extraction is best effort: missing metadata leaves the corresponding
// field at its zero value, and a page that cannot even be parsed still
// yields an article carrying its URL.
type ArticleExtractor struct {
	content ContentExtractor
	config  Config
	logger  *slog.Logger
}

// New creates an ArticleExtractor. A nil content extractor defaults to
// readability-based extraction, a nil logger to slog.Default().
func New(content ContentExtractor, config Config, logger *slog.Logger) *ArticleExtractor {
	if content == nil {
		content = NewReadabilityExtractor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleExtractor{content: content, config: config, logger: logger}
}

// publishedAtFormats lists the timestamp layouts accepted for the
// published date, tried in order.
var publishedAtFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Extract parses the page and returns the article it describes.
// It never fails: unparseable pages produce an article with only the URL set.
func (e *ArticleExtractor) Extract(pageURL string, html string) *entity.Article {
	article := &entity.Article{URL: pageURL, Title: pageURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("HTML parse failed, keeping bare article",
			slog.String("url", pageURL),
			slog.String("error", err.Error()))
		return article
	}

	if title := e.extractTitle(doc); title != "" {
		article.Title = title
	}
	article.Subtitle = e.extractSubtitle(doc)
	article.ImageURL = metaContent(doc, `meta[property="og:image"]`)
	article.Author = e.extractAuthor(doc)
	article.PublishedAt = e.extractPublishedAt(doc, pageURL)
	article.Tags = extractTags(doc)
	article.RelatedArticles = e.extractRelated(doc, pageURL)
	article.IsPaywalled = detectPaywall(doc)

	content := e.extractContent(pageURL, html, doc)
	article.Content = content
	article.DeriveReadingTime(text.CountWords(content))

	return article
}

// extractTitle prefers the Open Graph title over the document title.
func (e *ArticleExtractor) extractTitle(doc *goquery.Document) string {
	if title := metaContent(doc, `meta[property="og:title"]`); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractSubtitle reads the description meta tag, falling back to the
// Open Graph description.
func (e *ArticleExtractor) extractSubtitle(doc *goquery.Document) string {
	if desc := metaContent(doc, `meta[name="description"]`); desc != "" {
		return desc
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

// extractAuthor reads the author meta tag, falling back to the texts of
// author profile links joined with ", ".
func (e *ArticleExtractor) extractAuthor(doc *goquery.Document) string {
	if author := metaContent(doc, `meta[name="author"]`); author != "" {
		return author
	}

	var names []string
	seen := make(map[string]bool)
	doc.Find(`a[href*="/author/"]`).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})

	return strings.Join(names, ", ")
}

// extractPublishedAt reads the article:published_time meta tag, falling
// back to the first <time datetime> element. Unparseable timestamps are
// logged and treated as absent.
func (e *ArticleExtractor) extractPublishedAt(doc *goquery.Document, pageURL string) *time.Time {
	raw := metaContent(doc, `meta[property="article:published_time"]`)
	if raw == "" {
		raw, _ = doc.Find("time[datetime]").First().Attr("datetime")
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		return nil
	}

	for _, layout := range publishedAtFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	e.logger.Warn("unparseable published date, treating as unknown",
		slog.String("url", pageURL),
		slog.String("value", raw))
	return nil
}

// extractTags collects article:tag meta values, first occurrence wins.
func extractTags(doc *goquery.Document) []string {
	var tags []string
	seen := make(map[string]bool)
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimSpace(s.AttrOr("content", ""))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	})

	return tags
}

// extractRelated collects links to other articles on the page, excluding
// the page itself.
func (e *ArticleExtractor) extractRelated(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var related []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		link := resolved.String()
		if link == pageURL || seen[link] {
			return
		}
		if !strings.Contains(resolved.Path, e.config.ArticlePathSegment) {
			return
		}
		seen[link] = true
		related = append(related, link)
	})

	return related
}

// extractContent runs the configured content extractor, falling back to
// joining the page's paragraph texts when it fails or finds nothing.
func (e *ArticleExtractor) extractContent(pageURL, html string, doc *goquery.Document) string {
	text, err := e.content.ExtractText(pageURL, html)
	if err == nil && text != "" {
		return text
	}
	if err != nil {
		e.logger.Debug("content extraction failed, using paragraph fallback",
			slog.String("url", pageURL),
			slog.String("error", err.Error()))
	}

	return paragraphText(doc)
}

// metaContent returns the trimmed content attribute of the first element
// matching the selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
