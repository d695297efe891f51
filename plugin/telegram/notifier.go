// Package telegram pushes milestone rewards to a Telegram chat. Delivery is
// best-effort: failures are logged and never surface to the request that
// triggered them.
package telegram

import (
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Notifier sends milestone messages through a Telegram bot.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Notifier. The token is validated against the bot
// API during construction.
func NewNotifier(botToken string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// Notify sends the earned rewards as one message.
func (n *Notifier) Notify(rewards []string) error {
	if len(rewards) == 0 {
		return nil
	}
	message := tgbotapi.NewMessage(n.chatID, strings.Join(rewards, "\n"))
	if _, err := n.bot.Send(message); err != nil {
		return errors.Wrap(err, "failed to send telegram message")
	}
	return nil
}

// NotifyAsync sends the rewards from a goroutine and only logs failures.
func (n *Notifier) NotifyAsync(rewards []string) {
	go func() {
		if err := n.Notify(rewards); err != nil {
			slog.Warn("failed to dispatch telegram milestone notification",
				slog.Int64("chat_id", n.chatID),
				slog.Any("err", err))
		}
	}()
}
