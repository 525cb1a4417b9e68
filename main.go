package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/antonmogul/Morning-update/internal/ai"
	"github.com/antonmogul/Morning-update/internal/brief"
	"github.com/antonmogul/Morning-update/internal/config"
	"github.com/antonmogul/Morning-update/internal/feeds"
	"github.com/antonmogul/Morning-update/internal/notify"
	"github.com/antonmogul/Morning-update/internal/notion"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error", "err", err)
	}

	fetcher := feeds.NewFetcher(30 * time.Second)
	aiClient := ai.NewClient(cfg.OpenAIAPIKey)
	publisher := notion.NewClient(cfg.NotionToken, cfg.NotionDailyDBID, cfg.NotionTitleProp)

	var notifier brief.Notifier
	if cfg.NotifierEnabled() {
		n, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn("telegram notifier disabled", "err", err)
		} else {
			notifier = n
		}
	}

	builder := brief.New(cfg, feeds.DefaultSources(), fetcher, aiClient, publisher, notifier)

	if err := builder.Run(context.Background()); err != nil {
		log.Fatal("daily brief failed", "err", err)
	}
}
