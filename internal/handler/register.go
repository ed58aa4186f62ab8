package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/i18n"
	tg "github.com/set-night/agripay/internal/telegram"
)

// Register registers all command and callback handlers on the bot instance.
// Plain text, photos and image documents reach HandleMessage through the
// bot's default handler.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dashboard", bot.MatchTypePrefix, h.handlePageCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/assistant", bot.MatchTypePrefix, h.handlePageCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/finance", bot.MatchTypePrefix, h.handlePageCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analytics", bot.MatchTypePrefix, h.handlePageCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/planner", bot.MatchTypePrefix, h.handlePageCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, h.handleLanguage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/camera", bot.MatchTypePrefix, h.handleCameraOpen)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)

	// Navigation callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbPagePrefix, bot.MatchTypePrefix, h.handlePageSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbFinancePrefix+"_", bot.MatchTypePrefix, h.handleFinancePage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.NoopCallback, bot.MatchTypeExact, h.handleNoop)

	// Language callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbLangMenu, bot.MatchTypeExact, h.handleLanguage)
	for _, l := range i18n.Languages {
		h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbLangPrefix+string(l), bot.MatchTypeExact, h.handleLanguageSelect)
	}

	// Draft callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDraftSend, bot.MatchTypeExact, h.handleDraftSend)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDraftClear, bot.MatchTypeExact, h.handleDraftClear)

	// Camera callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamOpen, bot.MatchTypeExact, h.handleCameraOpen)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamCapture, bot.MatchTypeExact, h.handleCameraCapture)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamRefresh, bot.MatchTypeExact, h.handleCameraRefresh)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamRetake, bot.MatchTypeExact, h.handleCameraRetake)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamAccept, bot.MatchTypeExact, h.handleCameraAccept)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbCamClose, bot.MatchTypeExact, h.handleCameraClose)
}

// handleNoop is a no-op callback handler used for pagination indicators and other
// non-interactive inline buttons. It simply acknowledges the callback query.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}

func answer(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}

// callbackMessageID is the id of the message carrying the pressed button.
func callbackMessageID(update *models.Update) int {
	if update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil {
		return update.CallbackQuery.Message.Message.ID
	}
	return 0
}

// detach keeps values from the update context but outlives it, for replies
// sent after a background request resolves.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), config.SendTimeout)
}
