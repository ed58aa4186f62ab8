package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
	tg "github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

// handlePlanForm takes "crop | season | land size | location" from the planner
// page and generates the plan in the background.
func (h *Handler) handlePlanForm(ctx context.Context, ws *workspace.Workspace, text string) {
	lang := ws.Locale.Language()

	details, err := service.ParsePlanForm(text)
	if err != nil {
		notice := i18n.T(lang, "planner_form_invalid") + "\n\n" + i18n.T(lang, "planner_form_hint")
		tg.SendHTML(ctx, h.bot, ws.ChatID, tg.EscapeHTML(notice), nil)
		return
	}
	if ws.Planner.Busy() {
		tg.SendHTML(ctx, h.bot, ws.ChatID, tg.EscapeHTML(i18n.T(lang, "planner_busy")), nil)
		return
	}

	ws.SetPlanForm(details)
	h.showPage(ctx, ws, ws.PageMessage())
	tg.SendHTML(ctx, h.bot, ws.ChatID, "⏳ "+tg.EscapeHTML(i18n.T(lang, "planner_generating")), nil)

	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.RequestTimeout)
	stopTyping := tg.StartTyping(genCtx, h.bot, ws.ChatID)

	go func() {
		defer cancel()
		advice, err := ws.Planner.Generate(genCtx, details, lang)
		stopTyping()

		sendCtx, sendCancel := detach(context.Background())
		defer sendCancel()

		if errors.Is(err, domain.ErrRequestInFlight) {
			tg.SendHTML(sendCtx, h.bot, ws.ChatID, tg.EscapeHTML(i18n.T(lang, "planner_busy")), nil)
			return
		}
		if !advice.OK() {
			if advice.Outcome == service.OutcomeFailed {
				h.tgLogger.LogError(fmt.Errorf("crop plan %s", advice.Outcome), fmt.Sprintf("planner for chat %d", ws.ChatID))
			}
			tg.SendMarkdown(sendCtx, h.bot, ws.ChatID, advice.Text, nil)
			return
		}
		h.sendPlan(sendCtx, ws, lang, advice.Text)
	}()
}

// sendPlan delivers the plan one section per message under a title.
func (h *Handler) sendPlan(ctx context.Context, ws *workspace.Workspace, lang i18n.Language, plan string) {
	title := "<b>🗓 " + tg.EscapeHTML(i18n.T(lang, "planner_result_title")) + "</b>"
	if _, err := tg.SendHTML(ctx, h.bot, ws.ChatID, title, nil); err != nil {
		slog.Error("send plan title", "chat_id", ws.ChatID, "error", err)
		return
	}

	sections := service.SplitPlanSections(plan)
	if len(sections) == 0 {
		if err := tg.SendMarkdown(ctx, h.bot, ws.ChatID, plan, nil); err != nil {
			slog.Error("send plan", "chat_id", ws.ChatID, "error", err)
		}
		return
	}
	for _, s := range sections {
		if err := tg.SendMarkdown(ctx, h.bot, ws.ChatID, "### "+s.Title+"\n\n"+s.Content, nil); err != nil {
			slog.Error("send plan section", "chat_id", ws.ChatID, "section", s.Title, "error", err)
			return
		}
	}
}
