package telegram

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

// NoopCallback is the data of buttons that only display something, like the
// page counter. It is answered without action.
const NoopCallback = "cur"

func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// Grid lays buttons out perRow to a row. The last row may be short.
func Grid(perRow int, buttons ...models.InlineKeyboardButton) [][]models.InlineKeyboardButton {
	if perRow < 1 {
		perRow = 1
	}
	rows := make([][]models.InlineKeyboardButton, 0, (len(buttons)+perRow-1)/perRow)
	for len(buttons) > perRow {
		rows = append(rows, buttons[:perRow:perRow])
		buttons = buttons[perRow:]
	}
	if len(buttons) > 0 {
		rows = append(rows, buttons)
	}
	return rows
}

// PaginationRow renders "« ‹ 2/5 › »" for 0-based page. Jumps that would not
// move are left out. Page buttons carry "<prefix>_<page>".
func PaginationRow(page, totalPages int, prefix string) []models.InlineKeyboardButton {
	target := func(p int) string { return prefix + "_" + strconv.Itoa(p) }

	var row []models.InlineKeyboardButton
	if page > 1 {
		row = append(row, InlineButton("«", target(0)))
	}
	if page > 0 {
		row = append(row, InlineButton("‹", target(page-1)))
	}
	row = append(row, InlineButton(strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages), NoopCallback))
	if page < totalPages-1 {
		row = append(row, InlineButton("›", target(page+1)))
	}
	if page < totalPages-2 {
		row = append(row, InlineButton("»", target(totalPages-1)))
	}
	return row
}
