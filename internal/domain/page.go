package domain

type Page string

const (
	PageDashboard Page = "dashboard"
	PageAssistant Page = "assistant"
	PageFinance   Page = "finance"
	PageAnalytics Page = "analytics"
	PagePlanner   Page = "planner"
)

// Pages lists the pages in sidebar order.
var Pages = []Page{PageDashboard, PageAssistant, PageFinance, PageAnalytics, PagePlanner}

// ParsePage maps a page name to a Page. Unknown names fall back to the dashboard.
func ParsePage(s string) Page {
	for _, p := range Pages {
		if string(p) == s {
			return p
		}
	}
	return PageDashboard
}
