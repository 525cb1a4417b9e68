package feeds

import "github.com/antonmogul/Morning-update/internal/models"

// DefaultSources is the static feed table. Returned fresh so callers and
// tests can substitute or modify their own copy.
func DefaultSources() []models.FeedSource {
	return []models.FeedSource{
		{
			Name: "guardian",
			URLs: []string{
				"https://www.theguardian.com/world/rss",
				"https://www.theguardian.com/uk/culture/rss",
				"https://www.theguardian.com/lifeandstyle/rss",
			},
			Prompt: "Mix of world, culture, and lifestyle stories.",
		},
		{
			Name: "bbc",
			URLs: []string{
				"https://feeds.bbci.co.uk/news/rss.xml",
				"https://feeds.bbci.co.uk/news/technology/rss.xml",
			},
			Prompt: "Prioritize Scotland and broader UK coverage.",
		},
		{
			Name: "montreal_gazette",
			URLs: []string{
				"https://montrealgazette.com/category/news/local-news/feed",
			},
			Prompt: "Local Montreal news with civic impact.",
		},
		{
			Name: "ai",
			URLs: []string{
				"https://feeds.arstechnica.com/arstechnica/ai",
				"https://www.techmeme.com/feed.xml",
			},
			Prompt: "AI/tech developments relevant to startups.",
		},
	}
}
