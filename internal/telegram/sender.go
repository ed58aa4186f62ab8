package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/config"
)

// markdownChunkLen leaves room for the tags markdown expands into.
const markdownChunkLen = config.MaxTelegramMessageLen - 600

// SendMarkdown sends model markdown as Telegram HTML, split into parts if
// needed. A part Telegram rejects is resent as plain text. The keyboard goes
// on the last part.
func SendMarkdown(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) error {
	parts := SplitMessage(text, markdownChunkLen)

	for i, part := range parts {
		part = FixMarkdown(part)
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeHTML,
		}
		if html, err := ToHTML(part); err == nil && html != "" {
			params.Text = html
		} else {
			params.ParseMode = ""
		}
		if i == len(parts)-1 && markup != nil {
			params.ReplyMarkup = markup
		}

		_, err := b.SendMessage(ctx, params)
		if err != nil && params.ParseMode != "" {
			slog.Warn("html send failed, falling back to plain text", "chat_id", chatID, "error", err)
			params.ParseMode = ""
			params.Text = part
			_, err = b.SendMessage(ctx, params)
		}
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}

	return nil
}

// SendHTML sends text already in Telegram HTML, truncated to one message.
func SendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      truncate(text),
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// EditHTML replaces the text and keyboard of a message sent by SendHTML.
func EditHTML(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, markup models.ReplyMarkup) error {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      truncate(text),
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	_, err := b.EditMessageText(ctx, params)
	return err
}

func truncate(text string) string {
	if runes := []rune(text); len(runes) > config.MaxTelegramMessageLen {
		return string(runes[:config.MaxTelegramMessageLen-3]) + "..."
	}
	return text
}

// StartTyping sends "typing..." every few seconds until the returned cancel
// function is called.
func StartTyping(ctx context.Context, b *bot.Bot, chatID int64) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(config.TypingInterval)
		defer ticker.Stop()
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: models.ChatActionTyping,
				})
			}
		}
	}()
	return cancel
}

// SendPhotoBytes uploads an image with an HTML caption.
func SendPhotoBytes(ctx context.Context, b *bot.Bot, chatID int64, name string, data []byte, caption string, markup models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: name, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	return b.SendPhoto(ctx, params)
}

// SendPhotoID resends a photo Telegram already stores.
func SendPhotoID(ctx context.Context, b *bot.Bot, chatID int64, fileID string, caption string) (*models.Message, error) {
	return b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileString{Data: fileID},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
}

// EditPhotoBytes swaps the image of a photo message, keeping it in place.
func EditPhotoBytes(ctx context.Context, b *bot.Bot, chatID int64, messageID int, name string, data []byte, caption string, markup models.ReplyMarkup) error {
	params := &bot.EditMessageMediaParams{
		ChatID:    chatID,
		MessageID: messageID,
		Media: &models.InputMediaPhoto{
			Media:           "attach://" + name,
			Caption:         caption,
			ParseMode:       models.ParseModeHTML,
			MediaAttachment: bytes.NewReader(data),
		},
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	_, err := b.EditMessageMedia(ctx, params)
	return err
}
