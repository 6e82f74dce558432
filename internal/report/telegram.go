package report

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// TelegramReporter pushes the batch summary to a chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

// Send implements the orchestrator's Reporter contract.
func (t *TelegramReporter) Send(_ context.Context, report types.BatchReport) error {
	text := fmt.Sprintf(
		"<b>%s</b>\nApplied: %d\nSkipped: %d\nApplied today: %d",
		subjectFor(report),
		len(report.Applied),
		len(report.Skipped),
		report.TotalAppliedJobsCount,
	)
	for _, rec := range report.Applied {
		text += fmt.Sprintf("\n\n✅ <b>%s</b>\n%s\n<a href=\"%s\">Posting</a>", rec.Title, rec.Company, rec.Link)
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}
