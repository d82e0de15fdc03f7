package discover

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned HTML per URL and records fetch order.
type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)
	html, ok := f.pages[url]
	if !ok {
		return "", errors.New("fetch failed: " + url)
	}
	return html, nil
}

func newDiscoverer(f *fakeFetcher, maxPages int) *Discoverer {
	return New(f, Config{ArticlePathSegment: "/content/", MaxPages: maxPages}, nil)
}

func TestDiscoverLinks_FiltersAndDeduplicates(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/world": `<html><body>
			<a href="/content/abc">Story</a>
			<a href="/content/abc">Story again</a>
			<a href="/world/other">Not an article</a>
			<a href="https://other.example.com/content/xyz">External story</a>
			<a>No href</a>
		</body></html>`,
	}}

	links, err := newDiscoverer(f, 10).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/content/abc",
		"https://other.example.com/content/xyz",
	}, links)
}

func TestDiscoverLinks_FollowsPagination(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/world": `<html><body>
			<a href="/content/a">A</a>
			<a href="/world?page=2">Next</a>
		</body></html>`,
		"https://example.com/world?page=2": `<html><body>
			<a href="/content/a">A repeated</a>
			<a href="/content/b">B</a>
		</body></html>`,
	}}

	links, err := newDiscoverer(f, 10).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/content/a",
		"https://example.com/content/b",
	}, links)
	assert.Equal(t, []string{
		"https://example.com/world",
		"https://example.com/world?page=2",
	}, f.fetched)
}

func TestDiscoverLinks_PaginationLabelsCaseInsensitive(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/world": `<html><body>
			<a href="/world?page=2"> OLDER </a>
		</body></html>`,
		"https://example.com/world?page=2": `<html><body>
			<a href="/content/b">B</a>
		</body></html>`,
	}}

	links, err := newDiscoverer(f, 10).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/content/b"}, links)
}

func TestDiscoverLinks_MaxPagesBoundsPagination(t *testing.T) {
	start := `<html><body>`
	for i := 2; i <= 6; i++ {
		start += fmt.Sprintf(`<a href="/world?page=%d">Next</a>`, i)
	}
	start += `</body></html>`

	pages := map[string]string{"https://example.com/world": start}
	for i := 2; i <= 6; i++ {
		pages[fmt.Sprintf("https://example.com/world?page=%d", i)] =
			fmt.Sprintf(`<a href="/content/p%d">P</a>`, i)
	}
	f := &fakeFetcher{pages: pages}

	links, err := newDiscoverer(f, 3).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	// start page plus two follow-up pages
	assert.Len(t, f.fetched, 3)
	assert.Equal(t, []string{
		"https://example.com/content/p2",
		"https://example.com/content/p3",
	}, links)
}

func TestDiscoverLinks_MaxPagesOneSkipsPagination(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/world": `<html><body>
			<a href="/content/a">A</a>
			<a href="/world?page=2">Next</a>
		</body></html>`,
	}}

	links, err := newDiscoverer(f, 1).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/content/a"}, links)
	assert.Len(t, f.fetched, 1)
}

func TestDiscoverLinks_PaginationFailureSkipped(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/world": `<html><body>
			<a href="/content/a">A</a>
			<a href="/world?page=2">Next</a>
			<a href="/world?page=3">Older</a>
		</body></html>`,
		// page=2 missing: its fetch fails
		"https://example.com/world?page=3": `<a href="/content/c">C</a>`,
	}}

	links, err := newDiscoverer(f, 10).DiscoverLinks(context.Background(), "https://example.com/world")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/content/a",
		"https://example.com/content/c",
	}, links)
}

func TestDiscoverLinks_StartPageFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}

	_, err := newDiscoverer(f, 10).DiscoverLinks(context.Background(), "https://example.com/world")
	assert.Error(t, err)
}

func TestDiscoverLinks_CustomPathSegment(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/front": `<html><body>
			<a href="/story/abc">Story</a>
			<a href="/content/ignored">Other convention</a>
		</body></html>`,
	}}

	d := New(f, Config{ArticlePathSegment: "/story/", MaxPages: 10}, nil)
	links, err := d.DiscoverLinks(context.Background(), "https://example.com/front")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/story/abc"}, links)
}
