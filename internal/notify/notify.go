// Package notify delivers ops notifications about batch outcomes. The
// Telegram notifier posts a short summary to the configured admin chat;
// when no bot is configured a noop notifier stands in.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/observability"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Telegram posts batch summaries to an admin chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zerolog.Logger
}

func NewTelegram(cfg config.NotifierConfig, logger *zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("creating bot API: %w", err)
	}

	return &Telegram{
		api:    api,
		chatID: cfg.TelegramChatID,
		logger: logger,
	}, nil
}

// BatchCompleted posts a one-line batch summary. The send itself is not
// cancelable; ctx is accepted for interface symmetry.
func (t *Telegram) BatchCompleted(_ context.Context, weekStartDate string, report domain.BatchReport) error {
	msg := tgbotapi.NewMessage(t.chatID, formatSummary(weekStartDate, report))

	if _, err := t.api.Send(msg); err != nil {
		observability.NotificationsSent.WithLabelValues(statusError).Inc()

		return fmt.Errorf("sending batch summary: %w", err)
	}

	observability.NotificationsSent.WithLabelValues(statusOK).Inc()
	t.logger.Debug().Str("week_start", weekStartDate).Msg("batch summary sent")

	return nil
}

func formatSummary(weekStartDate string, report domain.BatchReport) string {
	return fmt.Sprintf(
		"Weekly plan batch for %s: processed %d, success %d, failed %d, invalid emails %d",
		weekStartDate, report.Processed, report.Success, report.Failed, report.SkippedInvalidEmails,
	)
}

// Noop swallows notifications when no channel is configured.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) BatchCompleted(_ context.Context, _ string, _ domain.BatchReport) error {
	return nil
}
