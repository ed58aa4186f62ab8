package handler

import (
	"github.com/go-telegram/bot/models"
	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
	tg "github.com/set-night/agripay/internal/telegram"
)

const (
	cbPagePrefix    = "page_"
	cbLangPrefix    = "lang_"
	cbLangMenu      = "lang_menu"
	cbFinancePrefix = "fin_page"
	cbDraftSend     = "draft_send"
	cbDraftClear    = "draft_clear"
	cbCamOpen       = "cam_open"
	cbCamCapture    = "cam_capture"
	cbCamRefresh    = "cam_refresh"
	cbCamRetake     = "cam_retake"
	cbCamAccept     = "cam_accept"
	cbCamClose      = "cam_close"
)

var pageIcons = map[domain.Page]string{
	domain.PageDashboard: "🏠",
	domain.PageAssistant: "🤖",
	domain.PageFinance:   "💳",
	domain.PageAnalytics: "📊",
	domain.PagePlanner:   "🗓",
}

// sidebarRows lists every page, two per row, with the current one marked.
func sidebarRows(lang i18n.Language, current domain.Page) [][]models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(domain.Pages)+1)
	for _, p := range domain.Pages {
		label := pageIcons[p] + " " + i18n.T(lang, "sidebar_"+string(p))
		if p == current {
			label = "▸ " + label
		}
		buttons = append(buttons, tg.InlineButton(label, cbPagePrefix+string(p)))
	}
	buttons = append(buttons, tg.InlineButton("🌐 "+i18n.T(lang, "sidebar_language"), cbLangMenu))
	return tg.Grid(2, buttons...)
}

func sidebarKeyboard(lang i18n.Language, current domain.Page) *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(sidebarRows(lang, current)...)
}

func dashboardKeyboard(lang i18n.Language) *models.InlineKeyboardMarkup {
	t := func(key string) string { return i18n.T(lang, key) }
	rows := [][]models.InlineKeyboardButton{
		tg.ButtonRow(
			tg.InlineButton("💬 "+t("dashboard_action_ask"), cbPagePrefix+string(domain.PageAssistant)),
			tg.InlineButton("📷 "+t("dashboard_action_upload"), cbCamOpen),
		),
		tg.ButtonRow(
			tg.InlineButton("🏦 "+t("dashboard_action_loan"), cbPagePrefix+string(domain.PageFinance)),
			tg.InlineButton("💵 "+t("dashboard_action_receive"), cbPagePrefix+string(domain.PageFinance)),
		),
	}
	return tg.InlineKeyboard(append(rows, sidebarRows(lang, domain.PageDashboard)...)...)
}

func financeKeyboard(lang i18n.Language, page, totalPages int) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, cbFinancePrefix))
	}
	return tg.InlineKeyboard(append(rows, sidebarRows(lang, domain.PageFinance)...)...)
}

// draftRows offers the actions that make sense for the current draft.
func draftRows(lang i18n.Language, draft service.Draft) [][]models.InlineKeyboardButton {
	var row []models.InlineKeyboardButton
	if !draft.Empty() {
		row = append(row, tg.InlineButton("📨 "+i18n.T(lang, "assistant_send"), cbDraftSend))
	}
	if draft.Attachment != nil {
		row = append(row, tg.InlineButton("🗑 "+i18n.T(lang, "assistant_remove_image"), cbDraftClear))
	} else {
		row = append(row, tg.InlineButton("📷 "+i18n.T(lang, "assistant_camera"), cbCamOpen))
	}
	return [][]models.InlineKeyboardButton{row}
}

func draftKeyboard(lang i18n.Language, draft service.Draft) *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(draftRows(lang, draft)...)
}

func assistantKeyboard(lang i18n.Language, draft service.Draft) *models.InlineKeyboardMarkup {
	rows := draftRows(lang, draft)
	return tg.InlineKeyboard(append(rows, sidebarRows(lang, domain.PageAssistant)...)...)
}

func languageKeyboard(current i18n.Language) *models.InlineKeyboardMarkup {
	var row []models.InlineKeyboardButton
	for _, l := range i18n.Languages {
		label := l.Name()
		if l == current {
			label = "✓ " + label
		}
		row = append(row, tg.InlineButton(label, cbLangPrefix+string(l)))
	}
	return tg.InlineKeyboard(row)
}

func cameraKeyboard(lang i18n.Language, state capture.CameraState) *models.InlineKeyboardMarkup {
	t := func(key string) string { return i18n.T(lang, key) }
	closeRow := tg.ButtonRow(tg.InlineButton("✖️ "+t("cameramodal_close"), cbCamClose))

	switch state {
	case capture.CameraLive:
		return tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("📸 "+t("cameramodal_take_photo"), cbCamCapture),
				tg.InlineButton("🔄 "+t("cameramodal_refresh"), cbCamRefresh),
			),
			closeRow,
		)
	case capture.CameraFrozen:
		return tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("↩️ "+t("cameramodal_retake"), cbCamRetake),
				tg.InlineButton("✅ "+t("cameramodal_accept"), cbCamAccept),
			),
			closeRow,
		)
	default:
		return tg.InlineKeyboard(closeRow)
	}
}
