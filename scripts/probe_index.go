// Standalone probe for a news index page. It fetches the page, counts
// anchors that look like article links, and reports whether a pagination
// link is present, so a misbehaving crawl can be diagnosed without running
// the full pipeline.
//
// Usage:
//
//	go run scripts/probe_index.go https://news.example.com/ [path-segment]
//
// The path segment defaults to /content/.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type probeResult struct {
	URL            string   `json:"url"`
	Status         string   `json:"status"`
	HTTPCode       int      `json:"http_code"`
	ResponseTimeMS int64    `json:"response_time_ms"`
	ArticleLinks   int      `json:"article_links"`
	SampleLinks    []string `json:"sample_links,omitempty"`
	HasNextPage    bool     `json:"has_next_page"`
	NextPageURL    string   `json:"next_page_url,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty"`
}

const sampleLimit = 5

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: probe_index <index-url> [article-path-segment]")
		os.Exit(2)
	}
	indexURL := os.Args[1]
	segment := "/content/"
	if len(os.Args) > 2 {
		segment = os.Args[2]
	}

	result := probe(indexURL, segment)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	if result.Status != "OK" {
		os.Exit(1)
	}
}

func probe(indexURL, segment string) probeResult {
	result := probeResult{URL: indexURL}

	base, err := url.Parse(indexURL)
	if err != nil {
		result.Status = "BAD_URL"
		result.ErrorMessage = err.Error()
		return result
	}

	client := &http.Client{Timeout: 15 * time.Second}
	start := time.Now()
	resp, err := client.Get(indexURL)
	result.ResponseTimeMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = "FETCH_ERROR"
		result.ErrorMessage = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.HTTPCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		result.Status = "HTTP_ERROR"
		return result
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		result.Status = "PARSE_ERROR"
		result.ErrorMessage = err.Error()
		return result
	}

	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		ref, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		link := resolved.String()
		if !strings.Contains(resolved.Path, segment) || seen[link] {
			return
		}
		seen[link] = true
		result.ArticleLinks++
		if len(result.SampleLinks) < sampleLimit {
			result.SampleLinks = append(result.SampleLinks, link)
		}
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(s.Text()))
		if label != "next" && label != "older" {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil {
			return true
		}
		result.HasNextPage = true
		result.NextPageURL = base.ResolveReference(ref).String()
		return false
	})

	if result.ArticleLinks == 0 {
		result.Status = "EMPTY"
		return result
	}
	result.Status = "OK"
	return result
}
