package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func labels(row []models.InlineKeyboardButton) []string {
	out := make([]string, len(row))
	for i, b := range row {
		out[i] = b.Text
	}
	return out
}

func TestPaginationRow(t *testing.T) {
	assert.Equal(t, []string{"1/1"}, labels(PaginationRow(0, 1, "fin_page")))
	assert.Equal(t, []string{"1/2", "›"}, labels(PaginationRow(0, 2, "fin_page")))
	assert.Equal(t, []string{"‹", "2/2"}, labels(PaginationRow(1, 2, "fin_page")))
	assert.Equal(t, []string{"«", "‹", "3/5", "›", "»"}, labels(PaginationRow(2, 5, "fin_page")))

	row := PaginationRow(2, 5, "fin_page")
	assert.Equal(t, "fin_page_0", row[0].CallbackData)
	assert.Equal(t, "fin_page_1", row[1].CallbackData)
	assert.Equal(t, NoopCallback, row[2].CallbackData)
	assert.Equal(t, "fin_page_4", row[4].CallbackData)
}

func TestGrid(t *testing.T) {
	btns := []models.InlineKeyboardButton{
		InlineButton("a", "a"), InlineButton("b", "b"), InlineButton("c", "c"),
		InlineButton("d", "d"), InlineButton("e", "e"),
	}
	rows := Grid(2, btns...)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"e"}, labels(rows[2]))

	rows = Grid(2, btns[:4]...)
	assert.Len(t, rows, 2)
	assert.Empty(t, Grid(3))
}
