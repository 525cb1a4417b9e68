package models

import (
	"strings"
	"time"
)

// FeedSource is one named section: a set of feed endpoints sharing a focus prompt.
type FeedSource struct {
	Name   string
	URLs   []string
	Prompt string
}

// NewsItem is a single feed entry. Identity for de-duplication is (Title, URL).
// Importance and ImportanceReason are filled in by the scoring step; scoring
// never alters the other fields.
type NewsItem struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary"`
	Published time.Time `json:"published"`
	Source    string    `json:"source"`

	Importance       int    `json:"importance,omitempty"`
	ImportanceReason string `json:"importance_reason,omitempty"`
}

// Sections maps a section name to its items.
type Sections map[string][]NewsItem

// DisplayName turns a section key like "montreal_gazette" into "Montreal Gazette".
func DisplayName(section string) string {
	words := strings.Fields(strings.ReplaceAll(section, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
