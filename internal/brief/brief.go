// Package brief runs the daily pipeline: fetch feeds, score items, write
// section summaries and narration, and publish the result to the workspace.
package brief

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/antonmogul/Morning-update/internal/ai"
	"github.com/antonmogul/Morning-update/internal/audio"
	"github.com/antonmogul/Morning-update/internal/cleanup"
	"github.com/antonmogul/Morning-update/internal/config"
	"github.com/antonmogul/Morning-update/internal/models"
	"github.com/antonmogul/Morning-update/internal/notion"
)

const (
	roundupSize = 6

	completionComment = "✅ Daily news brief is ready – intro, roundup and section audios added."
)

// Fetcher retrieves filtered items per section.
type Fetcher interface {
	FetchSections(ctx context.Context, sources []models.FeedSource, sinceHours int) models.Sections
}

// NewsAI covers the scoring, generation and speech operations of the pipeline.
type NewsAI interface {
	ScoreItems(ctx context.Context, items []models.NewsItem, focus string) []models.NewsItem
	SummarizeSection(ctx context.Context, section string, items []models.NewsItem, maxItems int, focus string) string
	MorningIntro(ctx context.Context, counts []ai.SectionCount, name, location string) string
	Speech(ctx context.Context, text, voice string) ([]byte, error)
}

// Publisher is the workspace boundary.
type Publisher interface {
	FindOrCreatePage(ctx context.Context, title string) (notion.Page, error)
	AppendBlocks(ctx context.Context, pageID string, blocks []notion.Block) error
	AddComment(ctx context.Context, pageID, text string) error
}

// Notifier is an optional extra completion channel.
type Notifier interface {
	Send(text string) error
}

// Builder assembles and publishes one day's brief.
type Builder struct {
	cfg      *config.Config
	sources  []models.FeedSource
	fetcher  Fetcher
	ai       NewsAI
	pub      Publisher
	notifier Notifier
	now      func() time.Time
}

func New(cfg *config.Config, sources []models.FeedSource, fetcher Fetcher, newsAI NewsAI, pub Publisher, notifier Notifier) *Builder {
	return &Builder{
		cfg:      cfg,
		sources:  sources,
		fetcher:  fetcher,
		ai:       newsAI,
		pub:      pub,
		notifier: notifier,
		now:      time.Now,
	}
}

type labeledAudio struct {
	Label string
	URL   string
}

// Run executes the full pipeline for today. Failures local to one feed, one
// item or one section degrade in place; only publish-phase errors (and an
// unwritable output directory) are returned.
func (b *Builder) Run(ctx context.Context) error {
	dateStr := b.today()
	log.Info("building daily brief", "date", dateStr, "sections", len(b.sources))

	sections := b.fetcher.FetchSections(ctx, b.sources, b.cfg.SinceHours)

	scored := make(models.Sections, len(b.sources))
	for _, src := range b.sources {
		scored[src.Name] = b.ai.ScoreItems(ctx, sections[src.Name], src.Prompt)
		log.Info("scored section", "section", src.Name, "items", len(scored[src.Name]))
	}

	dayDir := filepath.Join(b.cfg.OutputDir, dateStr)
	if err := audio.EnsureDir(dayDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var mdParts []string
	var audioRefs []labeledAudio

	counts := make([]ai.SectionCount, 0, len(b.sources))
	for _, src := range b.sources {
		n := len(scored[src.Name])
		if n > b.cfg.MaxItemsPerSection {
			n = b.cfg.MaxItemsPerSection
		}
		counts = append(counts, ai.SectionCount{Name: src.Name, Count: n})
	}

	introText := b.ai.MorningIntro(ctx, counts, b.cfg.BriefName, b.cfg.BriefLocation)
	mdParts = append(mdParts, "## Morning Briefing\n\n"+introText)
	if ref, ok := b.narrate(ctx, dayDir, dateStr, "morning_intro", "🌅 Morning Intro", introText); ok {
		audioRefs = append(audioRefs, ref)
	}

	roundup := b.roundup(scored)
	mdParts = append(mdParts, roundup)
	if ref, ok := b.narrate(ctx, dayDir, dateStr, "roundup", "📈 Roundup", roundup); ok {
		audioRefs = append(audioRefs, ref)
	}

	for _, src := range b.sources {
		summary := b.ai.SummarizeSection(ctx, src.Name, scored[src.Name], b.cfg.MaxItemsPerSection, src.Prompt)
		mdParts = append(mdParts, cleanup.ForText(summary))

		if len(scored[src.Name]) == 0 {
			continue
		}
		label := fmt.Sprintf("%s %s – Section Audio", emojiFor(src.Name), models.DisplayName(src.Name))
		if ref, ok := b.narrate(ctx, dayDir, dateStr, src.Name, label, summary); ok {
			audioRefs = append(audioRefs, ref)
		}
	}

	return b.publish(ctx, dateStr, strings.Join(mdParts, "\n\n"), audioRefs)
}

func (b *Builder) publish(ctx context.Context, dateStr, body string, audioRefs []labeledAudio) error {
	page, err := b.pub.FindOrCreatePage(ctx, dateStr)
	if err != nil {
		return err
	}

	if err := b.pub.AppendBlocks(ctx, page.ID, notion.FromMarkdown(body)); err != nil {
		return err
	}

	if len(audioRefs) > 0 {
		blocks := []notion.Block{{Kind: notion.Divider}}
		for _, ref := range audioRefs {
			blocks = append(blocks, notion.AudioSection(ref.Label, ref.URL)...)
		}
		if err := b.pub.AppendBlocks(ctx, page.ID, blocks); err != nil {
			return err
		}
	}

	if err := b.pub.AddComment(ctx, page.ID, completionComment); err != nil {
		return err
	}

	if b.notifier != nil {
		if err := b.notifier.Send(fmt.Sprintf("✅ Morning update for %s published.", dateStr)); err != nil {
			log.Warn("completion notification failed", "err", err)
		}
	}

	log.Info("brief published", "page", page.URL, "audio_blocks", len(audioRefs))
	return nil
}

// narrate synthesizes speech for one block and writes the audio files.
// Any failure here only costs this block its narration.
func (b *Builder) narrate(ctx context.Context, dayDir, dateStr, slug, label, text string) (labeledAudio, bool) {
	spoken := cleanup.ForSpeech(text)
	if spoken == "" {
		return labeledAudio{}, false
	}

	data, err := b.ai.Speech(ctx, spoken, "")
	if err != nil {
		log.Warn("narration failed", "block", slug, "err", err)
		return labeledAudio{}, false
	}

	mp3Path := filepath.Join(dayDir, slug+".mp3")
	if err := audio.SaveBytes(mp3Path, data); err != nil {
		log.Warn("failed to write narration file", "path", mp3Path, "err", err)
		return labeledAudio{}, false
	}

	relPath := path.Join(b.cfg.OutputDir, dateStr, slug+".mp3")
	oggPath := filepath.Join(dayDir, slug+".ogg")
	if err := audio.ConvertToOgg(mp3Path, oggPath); err != nil {
		log.Warn("ogg conversion failed, keeping mp3", "block", slug, "err", err)
	} else {
		relPath = path.Join(b.cfg.OutputDir, dateStr, slug+".ogg")
	}

	return labeledAudio{
		Label: label,
		URL:   audio.RawURL(b.cfg.GithubRepo, b.cfg.GithubBranch, relPath),
	}, true
}

// roundup renders the high-importance items across all sections, newest-first
// within equal scores, capped at roundupSize.
func (b *Builder) roundup(scored models.Sections) string {
	type entry struct {
		section string
		item    models.NewsItem
	}

	var flat []entry
	for _, src := range b.sources {
		for _, item := range scored[src.Name] {
			if item.Importance >= b.cfg.ImportanceThreshold {
				flat = append(flat, entry{src.Name, item})
			}
		}
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].item.Importance > flat[j].item.Importance
	})

	if len(flat) == 0 {
		return "## Roundup\n_No items met the importance threshold today._"
	}
	if len(flat) > roundupSize {
		flat = flat[:roundupSize]
	}

	lines := []string{"## Roundup"}
	for _, e := range flat {
		lines = append(lines, fmt.Sprintf("- **[%s] %s** (Date: %s, Score: %d)",
			models.DisplayName(e.section), e.item.Title,
			e.item.Published.Format("2006-01-02"), e.item.Importance))
	}
	return strings.Join(lines, "\n")
}

func (b *Builder) today() string {
	loc, err := time.LoadLocation(b.cfg.Timezone)
	if err != nil {
		log.Warn("invalid timezone, using UTC", "tz", b.cfg.Timezone, "err", err)
		loc = time.UTC
	}
	return b.now().In(loc).Format("2006-01-02")
}

var sectionEmoji = map[string]string{
	"guardian":         "🗞️",
	"bbc":              "📺",
	"montreal_gazette": "🍁",
	"ai":               "🤖",
}

func emojiFor(section string) string {
	if e, ok := sectionEmoji[section]; ok {
		return e
	}
	return "📰"
}
