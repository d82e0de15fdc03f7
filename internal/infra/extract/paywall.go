package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// premiumTierSelectors are the meta tags publishers use to mark an
// article's access tier.
var premiumTierSelectors = []string{
	`meta[name="ft.access"]`,
	`meta[name="content_tier"]`,
	`meta[property="article:content_tier"]`,
}

// paywallPhrases mark a truncated article body behind a subscription wall.
var paywallPhrases = []string{
	"subscribe to read",
	"subscribe to continue",
}

// detectPaywall reports whether the page is behind a paywall. Signals are
// checked in order of reliability: JSON-LD accessibility metadata first,
// then access-tier meta tags, then subscription phrases in the body text.
// A non-premium tier is not decisive; only a positive signal short-circuits,
// so a "free" tier still falls through to the phrase scan. Pages with no
// signal are treated as free.
func detectPaywall(doc *goquery.Document) bool {
	if accessible, ok := jsonLDAccessibility(doc); ok {
		return !accessible
	}

	for _, selector := range premiumTierSelectors {
		tier := strings.ToLower(metaContent(doc, selector))
		if strings.Contains(tier, "premium") {
			return true
		}
	}

	body := strings.ToLower(doc.Find("body").Text())
	for _, phrase := range paywallPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}

	return false
}

// jsonLDAccessibility scans the page's JSON-LD blocks for an
// isAccessibleForFree declaration. Blocks come as a single object or as an
// array of objects; both shapes are walked. The second return value reports
// whether any block declared one.
func jsonLDAccessibility(doc *goquery.Document) (accessible, found bool) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}

		value, ok := findAccessibility(data)
		if !ok {
			return true
		}

		found = true
		accessible = accessibleValue(value)
		return false
	})

	return accessible, found
}

// findAccessibility locates an isAccessibleForFree entry in decoded JSON-LD,
// descending into array blocks.
func findAccessibility(data any) (any, bool) {
	switch d := data.(type) {
	case map[string]any:
		value, ok := d["isAccessibleForFree"]
		return value, ok
	case []any:
		for _, item := range d {
			if value, ok := findAccessibility(item); ok {
				return value, true
			}
		}
	}
	return nil, false
}

// accessibleValue interprets the isAccessibleForFree value, which
// publishers emit as a boolean or as the strings "true"/"false"/"no".
func accessibleValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return !strings.EqualFold(v, "false") && !strings.EqualFold(v, "no")
	default:
		return true
	}
}
