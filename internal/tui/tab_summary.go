package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
	"github.com/theirongolddev/spendfold/internal/tui/components"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// dailyChartHeight is the bar chart height on the summary tab.
const dailyChartHeight = 8

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	v := a.views
	month := v.ComputedAt.Format("January 2006")
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)
	catW := cw
	if !a.isCompactLayout() {
		catW = halves[0]
	}

	// Every category is listed, zeros included, in the fixed category order.
	catCard := components.ContentCard(
		"Category Totals · "+month,
		a.renderCategoryBars(v.Monthly, len(v.Monthly), components.CardInnerWidth(catW)),
		catW,
	)

	if a.isCompactLayout() {
		b.WriteString(catCard)
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Summary", a.renderSummaryBody(), cw))
	} else {
		b.WriteString(components.CardRow([]string{
			catCard,
			components.ContentCard("Summary", a.renderSummaryBody(), halves[1]),
		}))
	}
	b.WriteString("\n")

	if len(v.Daily) > 0 {
		b.WriteString(components.ContentCard(
			"Daily Spending · "+month,
			components.ColumnChart(chronological(v.Daily), chartDateLabels(v.Daily), a.compactMoney, t.Blue,
				components.CardInnerWidth(cw), dailyChartHeight),
			cw,
		))
	}
	return b.String()
}

// renderCategoryBars draws up to limit category rows.
func (a App) renderCategoryBars(totals []model.CategoryTotal, limit, w int) string {
	t := theme.Active
	if len(totals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Nothing spent this month.")
	}
	if limit < len(totals) {
		totals = totals[:limit]
	}

	bars := make([]components.Bar, len(totals))
	for i, ct := range totals {
		bars[i] = components.Bar{
			Label: string(ct.Category),
			Value: ct.Total.InexactFloat64(),
			Text:  cli.FormatMoney(a.currency(), ct.Total),
			Color: theme.CategoryColor(ct.Category),
		}
	}
	return components.HBarChart(bars, w)
}

func (a App) renderSummaryBody() string {
	t := theme.Active
	sum := a.views.Summary
	sym := a.currency()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	moneyStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)

	rows := []struct {
		label string
		value string
		money bool
	}{
		{"Total spent", cli.FormatMoney(sym, sum.Total), true},
		{"This month", cli.FormatMoney(sym, sum.MonthTotal), true},
		{"Categories used", cli.FormatNumber(int64(sum.CategoryCount)), false},
		{"Folders", cli.FormatNumber(int64(sum.FolderCount)), false},
		{"Expenses", cli.FormatNumber(int64(sum.ExpenseCount)), false},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", r.label)))
		if r.money {
			b.WriteString(moneyStyle.Render(r.value))
		} else {
			b.WriteString(valueStyle.Render(r.value))
		}
		b.WriteString("\n")
	}

	if top := pipeline.TopCategories(a.views.Monthly); len(top) > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", "Top category")))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)", top[0].Category, cli.FormatShare(top[0].Total, sum.MonthTotal))))
		b.WriteString("\n")
	}

	if len(sum.FolderNames) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Folders: "))
		b.WriteString(valueStyle.Render(strings.Join(sum.FolderNames, ", ")))
	}
	return b.String()
}
