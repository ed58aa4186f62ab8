package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/telegram"
)

// Recover keeps a panicking handler from taking the poller down. Panics are
// logged with their stack and reported to the ops chat through the bot that
// received the update.
func Recover(cfg *config.Config) bot.Middleware {
	var (
		once     sync.Once
		reporter *telegram.TelegramLogger
	)
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				kind, chatID := UpdateKind(update), ChatID(update)
				slog.Error("handler panic",
					"panic", r,
					"kind", kind,
					"chat_id", chatID,
					"stack", string(debug.Stack()),
				)
				once.Do(func() { reporter = telegram.NewTelegramLogger(b, cfg) })
				reporter.LogError(
					fmt.Errorf("panic: %v", r),
					fmt.Sprintf("%s update in chat %d", kind, chatID),
				)
			}()
			next(ctx, b, update)
		}
	}
}
