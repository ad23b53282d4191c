package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"bgp-notifier/internal/config"
	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/utils"
)

// TelegramAnnouncer pushes short alert summaries to a Telegram chat.
// It is a side channel next to the email pipeline and is rate limited
// so bursts of alerts do not trip the bot API.
type TelegramAnnouncer struct {
	cfg     config.Config
	logger  *logging.Logger
	limiter *rate.Limiter
}

func NewTelegramAnnouncer(cfg config.Config, logger *logging.Logger) *TelegramAnnouncer {
	return &TelegramAnnouncer{
		cfg:     cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.Telegram.RatePerSec)), cfg.Telegram.RatePerSec),
	}
}

// Announce sends text to the configured chat, waiting on the rate
// limiter first and retrying transient failures.
func (t *TelegramAnnouncer) Announce(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit wait: %w", err)
	}

	return utils.Retry(t.logger, 3, time.Second, func() error {
		b, err := bot.New(t.cfg.Telegram.BotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		params := &bot.SendMessageParams{
			ChatID: t.cfg.Telegram.ChatID,
			Text:   text,
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", t.cfg.Telegram.ChatID, err)
		}
		return nil
	})
}
