// Package article provides the read API handlers for stored articles:
// recency-ordered listing with optional title search, and detail lookup.
package article

import (
	"fmt"
	"time"

	"newscrawl/internal/domain/entity"
)

// DTO is the JSON shape of an article. Content is only populated on the
// detail endpoint; list responses keep it empty.
type DTO struct {
	ID              int64      `json:"id"`
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle,omitempty"`
	Author          string     `json:"author,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Content         string     `json:"content,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ScrapedAt       time.Time  `json:"scraped_at"`
	Tags            []string   `json:"tags,omitempty"`
	RelatedArticles []string   `json:"related_articles,omitempty"`
	WordCount       int        `json:"word_count,omitempty"`
	ReadingTime     string     `json:"reading_time,omitempty"`
}

// ListResponse is the JSON body of the list endpoint.
type ListResponse struct {
	Count int   `json:"count"`
	Items []DTO `json:"items"`
}

// toDTO converts an article. withContent controls whether the body text is
// included.
func toDTO(a *entity.Article, withContent bool) DTO {
	dto := DTO{
		ID:              a.ID,
		URL:             a.URL,
		Title:           a.Title,
		Subtitle:        a.Subtitle,
		Author:          a.Author,
		ImageURL:        a.ImageURL,
		PublishedAt:     a.PublishedAt,
		ScrapedAt:       a.ScrapedAt,
		Tags:            a.Tags,
		RelatedArticles: a.RelatedArticles,
		WordCount:       a.WordCount,
	}
	if a.ReadingTimeMin > 0 {
		dto.ReadingTime = fmt.Sprintf("%d min", a.ReadingTimeMin)
	}
	if withContent {
		dto.Content = a.Content
	}
	return dto
}
