package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIAPIKey    string
	NotionToken     string
	NotionDailyDBID string
	NotionTitleProp string

	OutputDir           string
	Timezone            string
	SinceHours          int
	MaxItemsPerSection  int
	ImportanceThreshold int

	GithubRepo   string
	GithubBranch string

	BriefName     string
	BriefLocation string

	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from the environment, honoring a local .env file
// when present. The three credentials are required; everything else defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		NotionToken:     getEnv("NOTION_TOKEN", ""),
		NotionDailyDBID: getEnv("NOTION_DAILY_DB_ID", ""),
		NotionTitleProp: getEnv("NOTION_DAILY_TITLE_PROP", "Name"),

		OutputDir:           getEnv("OUTPUT_DIR", "public/daily"),
		Timezone:            getEnv("TZ", "America/Toronto"),
		SinceHours:          getEnvAsInt("NEWS_SINCE_HOURS", 24),
		MaxItemsPerSection:  getEnvAsInt("NEWS_MAX_ITEMS", 5),
		ImportanceThreshold: getEnvAsInt("NEWS_IMPORTANCE_THRESHOLD", 70),

		GithubRepo:   getEnv("GITHUB_REPO", ""),
		GithubBranch: getEnv("GITHUB_REF_NAME", "main"),

		BriefName:     getEnv("BRIEF_NAME", "Anton"),
		BriefLocation: getEnv("BRIEF_LOCATION", "Montreal"),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
	}

	var missing []string
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if cfg.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if cfg.NotionDailyDBID == "" {
		missing = append(missing, "NOTION_DAILY_DB_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// NotifierEnabled reports whether the optional Telegram notification channel
// is fully configured.
func (c *Config) NotifierEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
