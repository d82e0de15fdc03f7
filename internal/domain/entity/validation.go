package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for stored URLs.
const maxURLLength = 2048

// ValidateURL checks that a URL is well-formed, absolute, and uses an HTTP scheme.
// Returns a ValidationError describing the first problem found.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// Validate checks the article invariants before persistence:
// a valid absolute URL, a non-empty title, and word count / reading time
// either both absent or both present with reading time at least one minute.
func (a *Article) Validate() error {
	if err := ValidateURL(a.URL); err != nil {
		return err
	}

	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}

	if a.WordCount < 0 {
		return &ValidationError{Field: "word_count", Message: "word count must not be negative"}
	}

	if (a.WordCount == 0) != (a.ReadingTimeMin == 0) {
		return &ValidationError{
			Field:   "reading_time_min",
			Message: "word count and reading time must be set together",
		}
	}

	if a.WordCount > 0 && a.ReadingTimeMin < 1 {
		return &ValidationError{
			Field:   "reading_time_min",
			Message: "reading time must be at least one minute",
		}
	}

	return nil
}
