package handler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/middleware"
	"github.com/set-night/agripay/internal/service"
	tg "github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

// attachWorkspace re-renders a workspace's page whenever its language changes.
func (h *Handler) attachWorkspace(ws *workspace.Workspace) {
	ws.OnLanguageChange(func(i18n.Language) {
		ctx, cancel := detach(context.Background())
		defer cancel()
		h.showPage(ctx, ws, ws.PageMessage())
	})
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil || update.Message == nil {
		return
	}
	ws.SetPage(domain.PageDashboard)
	h.showPage(ctx, ws, 0)
}

// handlePageCommand serves /dashboard, /assistant, /finance, /analytics and /planner.
func (h *Handler) handlePageCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil || update.Message == nil {
		return
	}
	cmd, _, _ := strings.Cut(strings.TrimPrefix(update.Message.Text, "/"), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	ws.SetPage(domain.ParsePage(cmd))
	h.showPage(ctx, ws, 0)
}

func (h *Handler) handlePageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")

	page := domain.ParsePage(strings.TrimPrefix(update.CallbackQuery.Data, cbPagePrefix))
	ws.SetPage(page)
	h.showPage(ctx, ws, callbackMessageID(update))
}

func (h *Handler) handleFinancePage(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")

	n, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, cbFinancePrefix+"_"))
	if err != nil {
		return
	}
	ws.SetPage(domain.PageFinance)
	text, markup := h.renderFinance(ctx, ws.Locale.Language(), n)
	h.present(ctx, ws, callbackMessageID(update), text, markup)
}

// showPage renders the workspace's current page, editing editID in place when
// possible.
func (h *Handler) showPage(ctx context.Context, ws *workspace.Workspace, editID int) {
	text, markup := h.renderPage(ctx, ws)
	h.present(ctx, ws, editID, text, markup)
}

func (h *Handler) present(ctx context.Context, ws *workspace.Workspace, editID int, text string, markup *models.InlineKeyboardMarkup) {
	if editID != 0 {
		err := tg.EditHTML(ctx, h.bot, ws.ChatID, editID, text, markup)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			ws.SetPageMessage(editID)
			return
		}
		slog.Debug("edit page failed, sending new message", "chat_id", ws.ChatID, "error", err)
	}

	msg, err := tg.SendHTML(ctx, h.bot, ws.ChatID, text, markup)
	if err != nil {
		slog.Error("send page", "chat_id", ws.ChatID, "page", ws.Page(), "error", err)
		return
	}
	ws.SetPageMessage(msg.ID)
}

func (h *Handler) renderPage(ctx context.Context, ws *workspace.Workspace) (string, *models.InlineKeyboardMarkup) {
	lang := ws.Locale.Language()

	switch page := ws.Page(); page {
	case domain.PageAssistant:
		draft := ws.Conversation.Draft()
		return assistantView(lang, draft, ws.Conversation.State() == service.StateAwaiting), assistantKeyboard(lang, draft)
	case domain.PageFinance:
		return h.renderFinance(ctx, lang, 0)
	case domain.PageAnalytics:
		report, err := h.farm.Analytics(ctx)
		if err != nil {
			slog.Error("load analytics", "chat_id", ws.ChatID, "error", err)
		}
		return analyticsView(lang, report), sidebarKeyboard(lang, page)
	case domain.PagePlanner:
		var form *service.PlanDetails
		if d, ok := ws.PlanForm(); ok {
			form = &d
		}
		return plannerView(lang, form), sidebarKeyboard(lang, page)
	default:
		summary, err := h.farm.Dashboard(ctx)
		if err != nil {
			slog.Error("load dashboard", "chat_id", ws.ChatID, "error", err)
		}
		return dashboardView(lang, summary), dashboardKeyboard(lang)
	}
}

func (h *Handler) renderFinance(ctx context.Context, lang i18n.Language, page int) (string, *models.InlineKeyboardMarkup) {
	var wallet *domain.Wallet
	var txs []domain.Transaction

	summary, err := h.farm.Dashboard(ctx)
	if err == nil {
		txs, err = h.farm.Transactions(ctx)
	}
	if err != nil {
		slog.Error("load finance", "error", err)
	} else {
		wallet = &summary.Wallet
	}

	text, page, total := financeView(lang, wallet, txs, page)
	return text, financeKeyboard(lang, page, total)
}
