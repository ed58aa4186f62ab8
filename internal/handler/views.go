package handler

import (
	"fmt"
	"strings"

	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/set-night/agripay/internal/service"
	tg "github.com/set-night/agripay/internal/telegram"
	"github.com/shopspring/decimal"
)

const (
	financePageSize = 5
	dateLayout      = "2006-01-02"
)

// header is the shell's top bar: app name, user role and page title.
func header(lang i18n.Language, page domain.Page) string {
	return fmt.Sprintf("🌱 <b>%s</b> · %s\n<b>%s</b>\n\n",
		tg.EscapeHTML(i18n.T(lang, "header_app_name")),
		tg.EscapeHTML(i18n.T(lang, "header_user_role")),
		tg.EscapeHTML(i18n.T(lang, "page_title_"+string(page))),
	)
}

func card(sb *strings.Builder, icon, title, value, desc string) {
	fmt.Fprintf(sb, "%s <b>%s</b>: %s\n    <i>%s</i>\n", icon, tg.EscapeHTML(title), tg.EscapeHTML(value), tg.EscapeHTML(desc))
}

// formatUSD renders an amount as $1,250.75.
func formatUSD(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + sb.String() + "." + frac
}

func statusLabel(lang i18n.Language, s domain.TxStatus) string {
	return i18n.T(lang, "status_"+string(s))
}

func transactionLine(lang i18n.Language, tx domain.Transaction) string {
	sign, icon := "+", "🟢"
	if tx.TxType == domain.TxTypeDebit {
		sign, icon = "-", "🔴"
	}
	return fmt.Sprintf("%s %s %s · %s\n    %s · %s\n",
		icon, sign, formatUSD(tx.Amount),
		tg.EscapeHTML(tx.Description),
		tx.Date.Format(dateLayout),
		tg.EscapeHTML(statusLabel(lang, tx.Status)),
	)
}

func transactionTable(sb *strings.Builder, lang i18n.Language, txs []domain.Transaction) {
	if len(txs) == 0 {
		sb.WriteString(tg.EscapeHTML(i18n.T(lang, "table_empty")) + "\n")
		return
	}
	for _, tx := range txs {
		sb.WriteString(transactionLine(lang, tx))
	}
}

func dashboardView(lang i18n.Language, s *service.DashboardSummary) string {
	var sb strings.Builder
	sb.WriteString(header(lang, domain.PageDashboard))

	t := func(key string) string { return i18n.T(lang, key) }
	card(&sb, "🌤", t("dashboard_card_weather_title"), t("dashboard_card_weather_value"), t("dashboard_card_weather_desc"))
	if s == nil {
		sb.WriteString("\n" + tg.EscapeHTML(t("dashboard_unavailable")) + "\n")
		return sb.String()
	}

	card(&sb, "💰", t("dashboard_card_balance_title"), formatUSD(s.Wallet.Balance), t("dashboard_card_balance_desc"))
	card(&sb, "⚠️", t("dashboard_card_alerts_title"), t("dashboard_card_alerts_value"), t("dashboard_card_alerts_desc"))
	card(&sb, "🌾", t("dashboard_card_yield_title"), t("dashboard_card_yield_value"), t("dashboard_card_yield_desc"))

	sb.WriteString("\n<b>" + tg.EscapeHTML(t("dashboard_transactions_title")) + "</b>\n")
	transactionTable(&sb, lang, s.Recent)
	return sb.String()
}

// financeView shows one page of the full history. page is clamped to range.
func financeView(lang i18n.Language, wallet *domain.Wallet, txs []domain.Transaction, page int) (string, int, int) {
	var sb strings.Builder
	sb.WriteString(header(lang, domain.PageFinance))

	if wallet == nil {
		sb.WriteString(tg.EscapeHTML(i18n.T(lang, "dashboard_unavailable")) + "\n")
		return sb.String(), 0, 1
	}

	card(&sb, "💳", i18n.T(lang, "finance_balance_title"), formatUSD(wallet.Balance), i18n.T(lang, "finance_balance_desc"))

	totalPages := (len(txs) + financePageSize - 1) / financePageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(0, min(page, totalPages-1))

	start := page * financePageSize
	end := min(start+financePageSize, len(txs))

	sb.WriteString("\n<b>" + tg.EscapeHTML(i18n.T(lang, "finance_history_title")) + "</b>\n")
	transactionTable(&sb, lang, txs[start:end])
	return sb.String(), page, totalPages
}

func analyticsView(lang i18n.Language, r *service.AnalyticsReport) string {
	var sb strings.Builder
	sb.WriteString(header(lang, domain.PageAnalytics))

	t := func(key string) string { return tg.EscapeHTML(i18n.T(lang, key)) }
	if r == nil {
		sb.WriteString(t("dashboard_unavailable") + "\n")
		return sb.String()
	}

	sb.WriteString("<b>" + t("analytics_yield_title") + "</b>\n")
	peak := decimal.Zero
	for _, y := range r.Yields {
		peak = decimal.Max(peak, y.TonsPerHa)
	}
	for _, y := range r.Yields {
		label := tg.EscapeHTML(y.Season)
		if y.Predicted {
			label += " " + t("analytics_yield_predicted")
		}
		fmt.Fprintf(&sb, "<code>%s</code> %s %s\n", bar(y.TonsPerHa, peak, 10), label, y.TonsPerHa.StringFixed(1))
	}

	sb.WriteString("\n<b>" + t("analytics_expense_title") + "</b>\n")
	for _, e := range r.Expenses {
		fmt.Fprintf(&sb, "• %s: %s (%s%%)\n", t("analytics_expense_"+string(e.Category)), formatUSD(e.Amount), e.Percent.String())
	}

	sb.WriteString("\n<b>" + t("analytics_soil_title") + "</b>\n")
	for _, s := range r.Soil {
		fmt.Fprintf(&sb, "%s %s %s\n", soilIcon(s.Level), t("analytics_soil_"+s.Nutrient), t("analytics_soil_"+string(s.Level)))
	}
	fmt.Fprintf(&sb, "⚪ %s %s\n", t("analytics_soil_ph"), t("analytics_soil_ph_value"))
	sb.WriteString("\n💡 <i>" + t("analytics_soil_recommendation") + "</i>\n")
	return sb.String()
}

func soilIcon(l domain.SoilLevel) string {
	switch l {
	case domain.SoilLow:
		return "🔴"
	case domain.SoilMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// bar draws v as a block bar scaled so peak fills width.
func bar(v, peak decimal.Decimal, width int) string {
	if !peak.IsPositive() {
		return strings.Repeat("░", width)
	}
	n := int(v.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	n = max(0, min(n, width))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func assistantView(lang i18n.Language, draft service.Draft, awaiting bool) string {
	var sb strings.Builder
	sb.WriteString(header(lang, domain.PageAssistant))
	sb.WriteString(tg.EscapeHTML(i18n.T(lang, "assistant_greeting")) + "\n\n")
	sb.WriteString("<i>" + tg.EscapeHTML(i18n.T(lang, "assistant_input_placeholder")) + "</i>\n")
	if draft.Attachment != nil {
		sb.WriteString("\n📎 " + tg.EscapeHTML(i18n.T(lang, "assistant_image_attached")) + "\n")
	}
	if awaiting {
		sb.WriteString("\n⏳ " + tg.EscapeHTML(i18n.T(lang, "assistant_wait")) + "\n")
	}
	return sb.String()
}

func plannerView(lang i18n.Language, form *service.PlanDetails) string {
	var sb strings.Builder
	sb.WriteString(header(lang, domain.PagePlanner))
	sb.WriteString("<b>" + tg.EscapeHTML(i18n.T(lang, "planner_title")) + "</b>\n")
	sb.WriteString(tg.EscapeHTML(i18n.T(lang, "planner_description")) + "\n\n")
	sb.WriteString(tg.EscapeHTML(i18n.T(lang, "planner_form_hint")) + "\n")
	if form != nil {
		fmt.Fprintf(&sb, "\n<code>%s | %s | %s | %s</code>\n",
			tg.EscapeHTML(form.Crop), tg.EscapeHTML(form.Season), tg.EscapeHTML(form.LandSize), tg.EscapeHTML(form.Location))
	}
	return sb.String()
}
