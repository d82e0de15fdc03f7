// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article entity produced by the crawl pipeline, along with
// its validation rules and domain-specific errors.
package entity

import "time"

// wordsPerMinute is the reading speed used to derive reading time from word count.
const wordsPerMinute = 200

// Article represents a single extracted news article.
// An Article is built by the extractor from raw HTML and persisted exactly once;
// the URL is the natural key and rows are immutable after insertion.
//
// Optional fields use zero values for absence: empty string, nil slice, nil
// PublishedAt, zero WordCount/ReadingTimeMin. WordCount and ReadingTimeMin are
// always set together (see DeriveReadingTime).
type Article struct {
	ID              int64
	URL             string
	Title           string
	Content         string
	Author          string
	Subtitle        string
	ImageURL        string
	PublishedAt     *time.Time
	ScrapedAt       time.Time
	Tags            []string
	RelatedArticles []string
	WordCount       int
	ReadingTimeMin  int
	IsPaywalled     bool
}

// DeriveReadingTime sets WordCount and ReadingTimeMin from the article content.
// Reading time is round(words/200) with a floor of one minute; both fields stay
// zero when the content has no words.
func (a *Article) DeriveReadingTime(wordCount int) {
	if wordCount <= 0 {
		a.WordCount = 0
		a.ReadingTimeMin = 0
		return
	}
	a.WordCount = wordCount
	minutes := (wordCount + wordsPerMinute/2) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	a.ReadingTimeMin = minutes
}
