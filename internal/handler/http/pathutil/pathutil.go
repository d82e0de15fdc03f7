// Package pathutil provides URL path helpers for the read API handlers.
package pathutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID parses the integer ID that follows prefix in a URL path.
// IDs must be positive.
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// articleIDPattern matches article detail paths for metric label templating.
var articleIDPattern = regexp.MustCompile(`^/articles/\d+/?$`)

// NormalizePath collapses ID-bearing paths into a template so Prometheus
// label cardinality stays bounded. Static paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if articleIDPattern.MatchString(path) {
		return "/articles/:id"
	}
	return path
}
