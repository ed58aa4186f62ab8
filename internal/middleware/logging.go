package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Logging returns middleware that logs each update's kind and handling time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			next(ctx, b, update)

			attrs := []any{
				"kind", UpdateKind(update),
				"chat_id", ChatID(update),
				"duration", time.Since(start),
			}
			if update.CallbackQuery != nil {
				attrs = append(attrs, "data", update.CallbackQuery.Data)
			}
			slog.Debug("update handled", attrs...)
		}
	}
}

// UpdateKind names what an update carries: command, text, photo, document,
// callback or other.
func UpdateKind(update *models.Update) string {
	switch msg := update.Message; {
	case update.CallbackQuery != nil:
		return "callback"
	case msg == nil:
		return "other"
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Document != nil:
		return "document"
	case strings.HasPrefix(msg.Text, "/"):
		return "command"
	case msg.Text != "":
		return "text"
	}
	return "other"
}

// ChatID returns the chat an update belongs to, or 0.
func ChatID(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}
