package handler

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/middleware"
	tg "github.com/set-night/agripay/internal/telegram"
	"github.com/set-night/agripay/internal/workspace"
)

// handleCameraOpen serves /camera and the camera buttons. Any previous camera
// dialog is closed and its message removed first.
func (h *Handler) handleCameraOpen(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, "")

	if old := ws.CloseCamera(); old != 0 {
		h.deleteMessage(ctx, ws.ChatID, old)
	}
	cam, err := ws.OpenCamera(ctx)
	if err != nil {
		slog.Debug("camera open on closed workspace", "chat_id", ws.ChatID)
		return
	}
	h.showCamera(ctx, ws, cam, 0)
}

func (h *Handler) handleCameraCapture(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws, cam := h.cameraFor(ctx, update)
	if cam == nil {
		return
	}
	if err := cam.Capture(); err != nil {
		slog.Warn("camera capture", "chat_id", ws.ChatID, "error", err)
		answer(ctx, b, update, i18n.T(ws.Locale.Language(), "cameramodal_error"))
	} else {
		answer(ctx, b, update, "")
	}
	h.showCamera(ctx, ws, cam, callbackMessageID(update))
}

// handleCameraRefresh pulls a newer frame into the live view.
func (h *Handler) handleCameraRefresh(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws, cam := h.cameraFor(ctx, update)
	if cam == nil {
		return
	}
	answer(ctx, b, update, "")
	h.showCamera(ctx, ws, cam, callbackMessageID(update))
}

func (h *Handler) handleCameraRetake(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws, cam := h.cameraFor(ctx, update)
	if cam == nil {
		return
	}
	answer(ctx, b, update, "")
	if err := cam.Retake(ctx); err != nil {
		slog.Warn("camera retake", "chat_id", ws.ChatID, "error", err)
	}
	h.showCamera(ctx, ws, cam, callbackMessageID(update))
}

// handleCameraAccept moves the still into the draft and closes the dialog.
func (h *Handler) handleCameraAccept(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws, cam := h.cameraFor(ctx, update)
	if cam == nil {
		return
	}
	att, err := cam.Accept()
	if err != nil {
		slog.Warn("camera accept", "chat_id", ws.ChatID, "error", err)
		answer(ctx, b, update, i18n.T(ws.Locale.Language(), "generic_error"))
		h.showCamera(ctx, ws, cam, callbackMessageID(update))
		return
	}
	answer(ctx, b, update, "")

	if msgID := ws.CloseCamera(); msgID != 0 {
		h.deleteMessage(ctx, ws.ChatID, msgID)
	}
	ws.SetPage(domain.PageAssistant)
	ws.Conversation.AttachImage(att)
	h.sendDraftStatus(ctx, ws, "assistant_image_attached")
}

func (h *Handler) handleCameraClose(ctx context.Context, b *bot.Bot, update *models.Update) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return
	}
	answer(ctx, b, update, i18n.T(ws.Locale.Language(), "cameramodal_closed"))

	msgID := ws.CloseCamera()
	if msgID == 0 {
		msgID = callbackMessageID(update)
	}
	if msgID != 0 {
		h.deleteMessage(ctx, ws.ChatID, msgID)
	}
}

// cameraFor returns the camera dialog the pressed button belongs to. Buttons on
// an older dialog message are answered as expired.
func (h *Handler) cameraFor(ctx context.Context, update *models.Update) (*workspace.Workspace, *capture.CameraSession) {
	ws := middleware.GetWorkspace(ctx)
	if ws == nil {
		return nil, nil
	}
	cam := ws.Camera()
	if cam == nil || ws.CameraMessage() != callbackMessageID(update) {
		answer(ctx, h.bot, update, i18n.T(ws.Locale.Language(), "cameramodal_expired"))
		return ws, nil
	}
	return ws, cam
}

// showCamera renders the dialog for the session's state: the live frame or the
// frozen still as a photo, or an error notice when the device failed.
func (h *Handler) showCamera(ctx context.Context, ws *workspace.Workspace, cam *capture.CameraSession, editID int) {
	lang := ws.Locale.Language()
	state := cam.State()

	var (
		img    image.Image
		err    error
		prompt string
	)
	switch state {
	case capture.CameraLive:
		img, err = cam.LiveFrame()
		prompt = "cameramodal_live"
	case capture.CameraFrozen:
		img, err = cam.Still()
		prompt = "cameramodal_preview"
	default:
		err = cam.Err()
		if err == nil {
			err = domain.ErrCameraUnavailable
		}
	}

	var data []byte
	if err == nil {
		data, err = encodeFrame(img)
	}
	if err != nil {
		h.tgLogger.LogCamera(ws.ChatID, err)
		h.showCameraError(ctx, ws, lang, editID)
		return
	}

	caption := "<b>📷 " + tg.EscapeHTML(i18n.T(lang, "cameramodal_title")) + "</b>\n" +
		tg.EscapeHTML(i18n.T(lang, prompt))
	markup := cameraKeyboard(lang, state)

	if editID != 0 {
		err := tg.EditPhotoBytes(ctx, h.bot, ws.ChatID, editID, capture.CaptureFileName, data, caption, markup)
		if err == nil {
			return
		}
		slog.Debug("edit camera view failed, sending new message", "chat_id", ws.ChatID, "error", err)
		h.deleteMessage(ctx, ws.ChatID, editID)
	}

	msg, err := tg.SendPhotoBytes(ctx, h.bot, ws.ChatID, capture.CaptureFileName, data, caption, markup)
	if err != nil {
		slog.Error("send camera view", "chat_id", ws.ChatID, "error", err)
		return
	}
	ws.SetCameraMessage(msg.ID)
}

// showCameraError replaces the dialog with a text notice. Photo messages can't
// be edited into text, so the old one is deleted.
func (h *Handler) showCameraError(ctx context.Context, ws *workspace.Workspace, lang i18n.Language, editID int) {
	if editID != 0 {
		h.deleteMessage(ctx, ws.ChatID, editID)
	}
	text := "⚠️ " + tg.EscapeHTML(i18n.T(lang, "cameramodal_error"))
	msg, err := tg.SendHTML(ctx, h.bot, ws.ChatID, text, cameraKeyboard(lang, capture.CameraFailed))
	if err != nil {
		slog.Error("send camera error", "chat_id", ws.ChatID, "error", err)
		return
	}
	ws.SetCameraMessage(msg.ID)
}

func encodeFrame(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, domain.ErrNoFrame
	}
	return capture.EncodeJPEG(img)
}

func (h *Handler) deleteMessage(ctx context.Context, chatID int64, msgID int) {
	_, err := h.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: msgID})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Debug("delete message", "chat_id", chatID, "message_id", msgID, "error", err)
	}
}
