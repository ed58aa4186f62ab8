package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// ChatLimiter hands out one token bucket per chat.
type ChatLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	every    rate.Limit
	burst    int
}

// NewChatLimiter allows perMinute messages per chat with bursts of burst.
// perMinute <= 0 disables limiting.
func NewChatLimiter(perMinute, burst int) *ChatLimiter {
	every := rate.Inf
	if perMinute > 0 {
		every = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &ChatLimiter{
		limiters: make(map[int64]*rate.Limiter),
		every:    every,
		burst:    burst,
	}
}

func (l *ChatLimiter) Allow(chatID int64) bool {
	l.mu.Lock()
	lim, ok := l.limiters[chatID]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[chatID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Forget drops the bucket of a chat whose workspace was swept.
func (l *ChatLimiter) Forget(chatID int64) {
	l.mu.Lock()
	delete(l.limiters, chatID)
	l.mu.Unlock()
}

// RateLimit returns middleware that drops messages from chats over their rate.
// Callbacks are not limited.
func RateLimit(limiter *ChatLimiter, notice func(chatID int64) string) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !limiter.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   notice(chatID),
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
