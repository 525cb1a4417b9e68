package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/antonmogul/Morning-update/internal/cleanup"
	"github.com/antonmogul/Morning-update/internal/models"
)

const chatModel = openai.ChatModelGPT4oMini

// Client wraps the OpenAI API for scoring, text generation and speech.
type Client struct {
	client openai.Client
}

func NewClient(apiKey string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{client: openai.NewClient(opts...)}
}

// SectionCount pairs a section name with its capped item count, in brief order.
type SectionCount struct {
	Name  string
	Count int
}

type scoreResult struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// ScoreItems scores each item independently and returns the sequence sorted by
// descending importance. A failed or malformed response keeps the item with
// score 0 and a failure reason. Ties keep their incoming (recency) order.
func (c *Client) ScoreItems(ctx context.Context, items []models.NewsItem, focus string) []models.NewsItem {
	if len(items) == 0 {
		return nil
	}

	system := systemScore
	if focus != "" {
		system += " Focus on: " + focus
	}

	scored := make([]models.NewsItem, len(items))
	for i, item := range items {
		user := fmt.Sprintf("Title: %s\nURL: %s\nPublished: %s\nSummary: %s",
			item.Title, item.URL, item.Published.Format("2006-01-02T15:04:05"), item.Summary)

		result, err := c.chatJSON(ctx, system, user)
		if err != nil {
			log.Warn("scoring item failed", "title", item.Title, "err", err)
			item.Importance = 0
			item.ImportanceReason = "Scoring failed"
		} else {
			item.Importance = clampScore(result.Score)
			item.ImportanceReason = result.Reason
		}
		scored[i] = item
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Importance > scored[j].Importance
	})
	return scored
}

// SummarizeSection generates the section's text block: a heading, an
// item-count line and model-written bullets for the top maxItems stories.
// An empty section yields the fixed placeholder; a generation failure yields
// a fixed unavailable placeholder. Never returns empty text.
func (c *Client) SummarizeSection(ctx context.Context, section string, items []models.NewsItem, maxItems int, focus string) string {
	heading := "## " + models.DisplayName(section)
	if len(items) == 0 {
		return heading + "\n_No fresh items found._"
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}

	system := systemSummary
	if focus != "" {
		system += " Focus on: " + focus
	}

	var sb strings.Builder
	sb.WriteString("Summarize the following stories as bullet points for a quick brief:\n")
	for _, item := range items {
		sb.WriteString("- " + item.Title + "\n")
	}

	countLine := fmt.Sprintf("_%d stories this morning_", len(items))
	if len(items) == 1 {
		countLine = "_1 story this morning_"
	}

	body, err := c.chatText(ctx, system, sb.String())
	if err != nil {
		log.Warn("section summary failed", "section", section, "err", err)
		return heading + "\n" + countLine + "\n\n_Summary unavailable today._"
	}

	return heading + "\n" + countLine + "\n\n" + cleanup.ForText(body)
}

// MorningIntro generates the personalized opening block from capped per-section
// counts. On failure it degrades to a deterministic fallback that still carries
// the overview phrase.
func (c *Client) MorningIntro(ctx context.Context, counts []SectionCount, name, location string) string {
	overview := OverviewPhrase(counts)
	user := fmt.Sprintf("Name: %s\nLocation: %s\nOverview sentence: %s", name, location, overview)

	body, err := c.chatText(ctx, systemIntro, user)
	if err != nil {
		log.Warn("morning intro generation failed", "err", err)
		return fmt.Sprintf(fallbackIntro, name, location, overview)
	}
	return cleanup.ForText(body)
}

// OverviewPhrase renders capped section counts as a human-readable sentence,
// skipping empty sections. All-zero counts produce the quiet-morning phrase.
func OverviewPhrase(counts []SectionCount) string {
	var parts []string
	for _, sc := range counts {
		if sc.Count == 0 {
			continue
		}
		if len(parts) == 0 {
			noun := "articles"
			if sc.Count == 1 {
				noun = "article"
			}
			parts = append(parts, fmt.Sprintf("%d %s from %s", sc.Count, noun, models.DisplayName(sc.Name)))
		} else {
			parts = append(parts, fmt.Sprintf("%d from %s", sc.Count, models.DisplayName(sc.Name)))
		}
	}
	if len(parts) == 0 {
		return "Nothing major today, it's a quiet news morning."
	}
	return "Today's curated news: " + strings.Join(parts, ", ") + "."
}

// Speech synthesizes spoken MP3 audio for a text block. An empty voice picks
// one pseudo-randomly from the fixed set.
func (c *Client) Speech(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = RandomVoice()
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelGPT4oMiniTTS,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	return data, nil
}

func (c *Client) chatJSON(ctx context.Context, system, user string) (scoreResult, error) {
	content, err := c.chatText(ctx, system, user)
	if err != nil {
		return scoreResult{}, err
	}

	var result scoreResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &result); err != nil {
		return scoreResult{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

func (c *Client) chatText(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// cleanJSONResponse strips markdown code fences some models wrap around JSON.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
