package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/antonmogul/Morning-update/internal/models"
)

func rssFeed(title string, items ...string) string {
	body := ""
	for _, item := range items {
		body += item
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>%s</title>%s</channel></rss>`, title, body)
}

func rssItem(title, link, pubDate string) string {
	dateTag := ""
	if pubDate != "" {
		dateTag = "<pubDate>" + pubDate + "</pubDate>"
	}
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><description>%s summary</description>%s</item>",
		title, link, title, dateTag)
}

func serveFeeds(t *testing.T, feeds map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := feeds[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testFetcher(now time.Time) *Fetcher {
	f := NewFetcher(5 * time.Second)
	f.now = func() time.Time { return now }
	return f
}

func TestFetchSectionsSortsNewestFirst(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/feed": rssFeed("Test Feed",
			rssItem("Third", "https://example.com/3", "Fri, 03 Jan 2025 10:00:00 +0000"),
			rssItem("First", "https://example.com/1", "Wed, 01 Jan 2025 10:00:00 +0000"),
			rssItem("Second", "https://example.com/2", "Thu, 02 Jan 2025 10:00:00 +0000"),
		),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/feed"}},
	}, 96)

	items := sections["world"]
	assert.Equal(t, 3, len(items))
	assert.Equal(t, "Third", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
	assert.Equal(t, "First", items[2].Title)
	assert.Equal(t, "Test Feed", items[0].Source)
}

func TestFetchSectionsExcludesUndatedEntries(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/feed": rssFeed("Test Feed",
			rssItem("Dated", "https://example.com/dated", "Fri, 03 Jan 2025 10:00:00 +0000"),
			rssItem("Undated", "https://example.com/undated", ""),
		),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/feed"}},
	}, 96)

	items := sections["world"]
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "Dated", items[0].Title)
	assert.NotEqual(t, time.Time{}, items[0].Published)
}

func TestFetchSectionsExcludesStaleEntries(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/feed": rssFeed("Test Feed",
			rssItem("Fresh", "https://example.com/fresh", "Sat, 04 Jan 2025 08:00:00 +0000"),
			rssItem("Stale", "https://example.com/stale", "Wed, 01 Jan 2025 10:00:00 +0000"),
		),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/feed"}},
	}, 24)

	items := sections["world"]
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "Fresh", items[0].Title)
}

func TestFetchSectionsDeduplicatesByTitleAndLink(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/a": rssFeed("Feed A",
			rssItem("Shared Story", "https://example.com/story", "Fri, 03 Jan 2025 10:00:00 +0000"),
			rssItem("Shared Story", "https://example.com/story", "Fri, 03 Jan 2025 10:00:00 +0000"),
		),
		"/b": rssFeed("Feed B",
			rssItem("Shared Story", "https://example.com/story", "Fri, 03 Jan 2025 10:00:00 +0000"),
			rssItem("Shared Story", "https://example.com/other-link", "Fri, 03 Jan 2025 09:00:00 +0000"),
		),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/a", srv.URL + "/b"}},
	}, 96)

	items := sections["world"]
	assert.Equal(t, 2, len(items))
	// Same title under a different link is a distinct item.
	assert.Equal(t, "https://example.com/story", items[0].URL)
	assert.Equal(t, "https://example.com/other-link", items[1].URL)
	// First occurrence wins: the surviving copy comes from Feed A.
	assert.Equal(t, "Feed A", items[0].Source)
}

func TestFetchSectionsSkipsFailingEndpoint(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/good": rssFeed("Good Feed",
			rssItem("Survivor", "https://example.com/s", "Fri, 03 Jan 2025 10:00:00 +0000"),
		),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/missing", srv.URL + "/good"}},
	}, 96)

	items := sections["world"]
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "Survivor", items[0].Title)
}

func TestFetchSectionsEmptySectionIsValid(t *testing.T) {
	srv := serveFeeds(t, map[string]string{
		"/empty": rssFeed("Empty Feed"),
	})

	f := testFetcher(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))
	sections := f.FetchSections(context.Background(), []models.FeedSource{
		{Name: "world", URLs: []string{srv.URL + "/empty"}},
	}, 24)

	items, ok := sections["world"]
	assert.Equal(t, true, ok)
	assert.Equal(t, 0, len(items))
}
