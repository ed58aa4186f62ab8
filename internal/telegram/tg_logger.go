package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/config"
)

type LogType string

const (
	LogTypeError  LogType = "error"
	LogTypeCamera LogType = "camera"
)

// TelegramLogger mirrors operational events to forum topics of an ops chat.
// Repeats of the same event are reported once per config.OpsReportCooldown.
type TelegramLogger struct {
	bot    *bot.Bot
	chatID int64
	topics map[LogType]int
	now    func() time.Time

	mu       sync.Mutex
	lastSent map[string]time.Time
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{
		bot:    b,
		chatID: cfg.LogTelegramChatID,
		topics: map[LogType]int{
			LogTypeError:  cfg.LogTopicError,
			LogTypeCamera: cfg.LogTopicCamera,
		},
		now:      time.Now,
		lastSent: make(map[string]time.Time),
	}
}

// Log sends message to the topic of logType. key groups repeats of one event.
func (l *TelegramLogger) Log(logType LogType, key, message string) {
	if l == nil || l.chatID == 0 || l.topics[logType] == 0 {
		return
	}
	if !l.allow(string(logType) + ":" + key) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.chatID,
		MessageThreadID: l.topics[logType],
		Text:            truncate(message),
		ParseMode:       models.ParseModeHTML,
	})
	if err != nil {
		slog.Error("failed to send ops report", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastSent[key]; ok && now.Sub(last) < config.OpsReportCooldown {
		return false
	}
	l.lastSent[key] = now
	return true
}

func (l *TelegramLogger) LogError(err error, where string) {
	l.Log(LogTypeError, where+err.Error(), report("❌ Error",
		"Where", where,
		"Error", err.Error(),
		"Time", l.clock().Format(time.DateTime),
	))
}

func (l *TelegramLogger) LogCamera(chatID int64, err error) {
	l.Log(LogTypeCamera, fmt.Sprint(chatID), report("📷 Camera unavailable",
		"Chat", fmt.Sprint(chatID),
		"Error", err.Error(),
	))
}

func (l *TelegramLogger) clock() time.Time {
	if l == nil || l.now == nil {
		return time.Now()
	}
	return l.now()
}

// report formats a title and label/value pairs as an HTML ops message.
func report(title string, pairs ...string) string {
	var sb strings.Builder
	sb.WriteString("<b>" + EscapeHTML(title) + "</b>\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&sb, "\n<b>%s:</b> <code>%s</code>", EscapeHTML(pairs[i]), EscapeHTML(pairs[i+1]))
	}
	return sb.String()
}
