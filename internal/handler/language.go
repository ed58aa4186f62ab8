package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/middleware"
	tg "github.com/set-night/agripay/internal/telegram"
)

// handleLanguage shows the language switch, from /language or the sidebar.
func (h *Handler) handleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")

	lang := ws.Locale.Language()
	text := "🌐 " + tg.EscapeHTML(i18n.T(lang, "language_prompt"))
	markup := languageKeyboard(lang)

	if msgID := callbackMessageID(update); msgID != 0 {
		if err := tg.EditHTML(ctx, b, ws.ChatID, msgID, text, markup); err == nil {
			return
		}
	}
	if _, err := tg.SendHTML(ctx, b, ws.ChatID, text, markup); err != nil {
		slog.Error("send language menu", "chat_id", ws.ChatID, "error", err)
	}
}

// handleLanguageSelect switches the workspace language. Subscribed views
// re-render the page message; a separate menu message is replaced by a notice.
func (h *Handler) handleLanguageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	lang, ok := i18n.ParseLanguage(strings.TrimPrefix(update.CallbackQuery.Data, cbLangPrefix))
	if !ok {
		answer(ctx, b, update, "")
		return
	}

	changed := ws.Locale.Language() != lang
	answer(ctx, b, update, i18n.T(lang, "language_changed"))
	ws.Locale.Set(lang)

	msgID := callbackMessageID(update)
	switch {
	case msgID == ws.PageMessage():
		if !changed {
			h.showPage(ctx, ws, msgID)
		}
	case msgID != 0:
		if err := tg.EditHTML(ctx, b, ws.ChatID, msgID, "✅ "+tg.EscapeHTML(i18n.T(lang, "language_changed")), nil); err != nil {
			slog.Debug("edit language menu", "chat_id", ws.ChatID, "error", err)
		}
	}
}
