package feeds

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mmcdole/gofeed"

	"github.com/antonmogul/Morning-update/internal/models"
)

// Fetcher retrieves and filters RSS items per section.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

// FetchSections fetches every endpoint of every section, keeps entries with a
// parseable publish date inside the recency window, de-duplicates by
// (title, link) and sorts newest first. A failing endpoint is skipped; a
// section with zero surviving items is returned as an empty slice.
func (f *Fetcher) FetchSections(ctx context.Context, sources []models.FeedSource, sinceHours int) models.Sections {
	cutoff := f.now().UTC().Add(-time.Duration(sinceHours) * time.Hour)
	result := make(models.Sections, len(sources))

	for _, src := range sources {
		var items []models.NewsItem
		for _, url := range src.URLs {
			fetched, err := f.fetchFeed(ctx, url, src.Name, cutoff)
			if err != nil {
				log.Warn("skipping feed endpoint", "section", src.Name, "url", url, "err", err)
				continue
			}
			items = append(items, fetched...)
		}

		items = dedupe(items)
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Published.After(items[j].Published)
		})
		result[src.Name] = items
	}

	return result
}

func (f *Fetcher) fetchFeed(ctx context.Context, url, section string, cutoff time.Time) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "morning-update/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := section
	if feed.Title != "" {
		source = feed.Title
	}

	var items []models.NewsItem
	for _, entry := range feed.Items {
		published, ok := publishDate(entry)
		if !ok || published.Before(cutoff) {
			continue
		}

		items = append(items, models.NewsItem{
			Title:     entry.Title,
			URL:       entry.Link,
			Summary:   entry.Description,
			Published: published,
			Source:    source,
		})
	}

	return items, nil
}

// publishDate returns the entry's publish instant normalized to UTC, trying
// the published field first and falling back to updated. Entries carrying
// neither are excluded by the caller, never defaulted to now.
func publishDate(entry *gofeed.Item) (time.Time, bool) {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC(), true
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC(), true
	}
	return time.Time{}, false
}

// dedupe keeps the first occurrence of each exact (title, link) pair.
func dedupe(items []models.NewsItem) []models.NewsItem {
	type key struct {
		title string
		url   string
	}
	seen := make(map[key]bool, len(items))
	deduped := items[:0]
	for _, item := range items {
		k := key{item.Title, item.URL}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, item)
	}
	return deduped
}
