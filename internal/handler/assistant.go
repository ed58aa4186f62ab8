package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/middleware"
	"github.com/set-night/agripay/internal/service"
	tg "github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

// HandleMessage routes non-command messages. Photos and image documents go to
// the assistant draft; text fills the planner form on the planner page and is
// a question for the assistant everywhere else.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || strings.HasPrefix(msg.Text, "/") {
		return
	}
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}

	if file, ok := imageFile(b, msg); ok {
		h.attachFile(ctx, ws, file, msg.Caption)
		return
	}

	if msg.Text == "" {
		return
	}
	if ws.Page() == domain.PagePlanner {
		h.handlePlanForm(ctx, ws, msg.Text)
		return
	}

	ws.SetPage(domain.PageAssistant)
	ws.Conversation.UpdateDraftText(msg.Text)
	h.submit(ctx, ws)
}

// imageFile picks the largest size of a photo, or an image sent as a document.
func imageFile(b *bot.Bot, msg *models.Message) (capture.File, bool) {
	if n := len(msg.Photo); n > 0 {
		photo := msg.Photo[n-1]
		return capture.File{
			Name:     photo.FileUniqueID + ".jpg",
			MimeType: "image/jpeg",
			Preview:  capture.Preview{MimeType: "image/jpeg", FileID: photo.FileID},
			Load:     tg.FileLoader(b, photo.FileID),
		}, true
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		return capture.File{
			Name:     doc.FileName,
			MimeType: doc.MimeType,
			Preview:  capture.Preview{MimeType: doc.MimeType, FileID: doc.FileID},
			Load:     tg.FileLoader(b, doc.FileID),
		}, true
	}
	return capture.File{}, false
}

func (h *Handler) attachFile(ctx context.Context, ws *workspace.Workspace, file capture.File, caption string) {
	ws.SetPage(domain.PageAssistant)
	ws.Conversation.AttachImage(capture.SelectFile(h.previews, file))

	if strings.TrimSpace(caption) != "" {
		ws.Conversation.UpdateDraftText(caption)
		h.submit(ctx, ws)
		return
	}
	h.sendDraftStatus(ctx, ws, "assistant_image_attached")
}

func (h *Handler) sendDraftStatus(ctx context.Context, ws *workspace.Workspace, key string) {
	lang := ws.Locale.Language()
	_, err := tg.SendHTML(ctx, h.bot, ws.ChatID, tg.EscapeHTML(i18n.T(lang, key)), draftKeyboard(lang, ws.Conversation.Draft()))
	if err != nil {
		slog.Error("send draft status", "chat_id", ws.ChatID, "error", err)
	}
}

// submit sends the draft and delivers the reply when it arrives.
func (h *Handler) submit(ctx context.Context, ws *workspace.Workspace) {
	pending, err := ws.Conversation.Submit()
	switch {
	case errors.Is(err, domain.ErrEmptyDraft):
		return
	case errors.Is(err, domain.ErrRequestInFlight):
		h.sendDraftStatus(ctx, ws, "assistant_wait")
		return
	case err != nil:
		slog.Error("submit draft", "chat_id", ws.ChatID, "error", err)
		return
	}

	sendCtx, cancel := detach(ctx)
	stopTyping := tg.StartTyping(sendCtx, h.bot, ws.ChatID)

	go func() {
		defer cancel()
		<-pending.Done()
		stopTyping()

		advice := pending.Advice()
		if advice.Outcome == service.OutcomeFailed {
			h.tgLogger.LogError(fmt.Errorf("advice %s", advice.Outcome), fmt.Sprintf("assistant reply for chat %d", ws.ChatID))
		}

		// Fresh timeout: the request itself may have used most of the first one.
		replyCtx, replyCancel := detach(context.Background())
		defer replyCancel()

		lang := ws.Locale.Language()
		reply := pending.Reply()
		if err := tg.SendMarkdown(replyCtx, h.bot, ws.ChatID, reply.Text, draftKeyboard(lang, ws.Conversation.Draft())); err != nil {
			slog.Error("send assistant reply", "chat_id", ws.ChatID, "error", err)
		}
	}()
}

func (h *Handler) handleDraftSend(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")
	ws.SetPage(domain.PageAssistant)
	h.submit(ctx, ws)
}

func (h *Handler) handleDraftClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")
	if ws.Conversation.Draft().Attachment == nil {
		return
	}
	ws.Conversation.ClearAttachment()
	h.sendDraftStatus(ctx, ws, "assistant_image_removed")
}

// handleHistory replays the whole conversation log.
func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	lang := ws.Locale.Language()

	msgs := ws.Conversation.Messages()
	if len(msgs) == 0 {
		tg.SendHTML(ctx, b, ws.ChatID, tg.EscapeHTML(i18n.T(lang, "assistant_history_empty")), nil)
		return
	}

	h.replayHistory(ctx, ws.ChatID, lang, msgs)
}

// replayHistory sends every entry of msgs in order. An entry that cannot be
// sent is logged and skipped.
func (h *Handler) replayHistory(ctx context.Context, chatID int64, lang i18n.Language, msgs []domain.Message) int {
	sent := 0
	for _, m := range msgs {
		if err := h.replay(ctx, chatID, lang, m); err != nil {
			slog.Error("replay message", "chat_id", chatID, "role", m.Role, "error", err)
			continue
		}
		sent++
	}
	return sent
}

func (h *Handler) replay(ctx context.Context, chatID int64, lang i18n.Language, m domain.Message) error {
	if m.Role == domain.RoleModel {
		return tg.SendMarkdown(ctx, h.bot, chatID, m.Text, nil)
	}

	caption := "<b>" + tg.EscapeHTML(i18n.T(lang, "assistant_you")) + ":</b>"
	if m.Text != "" {
		caption += " " + tg.EscapeHTML(m.Text)
	}

	if !m.HasImage() {
		_, err := tg.SendHTML(ctx, h.bot, chatID, caption, nil)
		return err
	}

	if m.Text == "" {
		caption += " <i>" + tg.EscapeHTML(i18n.T(lang, "assistant_photo_caption")) + "</i>"
	}
	preview, err := h.previews.Get(m.AttachedImage)
	switch {
	case err != nil:
	case preview.FileID != "":
		_, err = tg.SendPhotoID(ctx, h.bot, chatID, preview.FileID, caption)
	case len(preview.Data) > 0:
		_, err = tg.SendPhotoBytes(ctx, h.bot, chatID, capture.CaptureFileName, preview.Data, caption, nil)
	default:
		err = fmt.Errorf("preview %s holds no image", m.AttachedImage)
	}
	if err == nil {
		return nil
	}

	// The picture is gone or rejected; keep the turn's text in the log.
	slog.Warn("replay photo failed, sending caption only", "chat_id", chatID, "error", err)
	_, err = tg.SendHTML(ctx, h.bot, chatID, caption, nil)
	return err
}
