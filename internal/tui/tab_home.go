package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/pipeline"
	"github.com/theirongolddev/spendfold/internal/tui/components"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// homeTopCategories caps the category card on the home tab.
const homeTopCategories = 5

func (a App) renderHomeTab(cw int) string {
	t := theme.Active
	v := a.views
	sum := v.Summary
	sym := a.currency()
	var b strings.Builder

	// Row 1: headline numbers
	monthHint := "no spending yet"
	if top := pipeline.TopCategories(v.Monthly); len(top) > 0 {
		monthHint = "top: " + string(top[0].Category)
	}
	metrics := []components.Metric{
		{Label: "Total spent", Value: cli.FormatMoney(sym, sum.Total), Color: t.GreenBright},
		{Label: "This month", Value: cli.FormatMoney(sym, sum.MonthTotal), Hint: monthHint},
		{Label: "Folders", Value: cli.FormatNumber(int64(sum.FolderCount)), Hint: cli.Plural(sum.CategoryCount, "category", "categories")},
		{Label: "Expenses", Value: cli.FormatNumber(int64(sum.ExpenseCount))},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: recent expenses
	b.WriteString(components.ContentCard("Recent Expenses", a.renderRecent(cw), cw))
	b.WriteString("\n")

	// Row 3: this month by category + daily trend
	halves := components.LayoutRow(cw, 2)
	catCard := components.ContentCard(
		"This Month by Category",
		a.renderCategoryBars(pipeline.TopCategories(v.Monthly), homeTopCategories, components.CardInnerWidth(halves[0])),
		halves[0],
	)
	dailyCard := components.ContentCard(
		"Daily Spending",
		a.renderDailySparkline(components.CardInnerWidth(halves[1])),
		halves[1],
	)

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("This Month by Category",
			a.renderCategoryBars(pipeline.TopCategories(v.Monthly), homeTopCategories, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Daily Spending", a.renderDailySparkline(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{catCard, dailyCard}))
	}

	return b.String()
}

func (a App) renderRecent(cw int) string {
	t := theme.Active
	v := a.views

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(v.Recent) == 0 {
		if len(v.Folders) == 0 {
			return mutedStyle.Render("No folders yet. Press [n] to create your first folder.")
		}
		return mutedStyle.Render("No expenses yet. Press [a] to add one to the selected folder.")
	}

	inner := components.CardInnerWidth(cw)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	moneyStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	const (
		dateW   = 12
		amountW = 14
	)
	folderW := 18
	catW := 18
	if a.isCompactLayout() {
		folderW = 12
		catW = 12
	}
	titleW := max(inner-dateW-folderW-catW-amountW-4, 8)

	lines := make([]string, 0, len(v.Recent))
	for _, e := range v.Recent {
		catStyle := lipgloss.NewStyle().Foreground(theme.CategoryColor(e.Category)).Background(t.Surface)
		line := dimStyle.Render(fmt.Sprintf("%-*s ", dateW, cli.FormatDate(e.Date))) +
			rowStyle.Render(fmt.Sprintf("%-*s ", titleW, cli.Truncate(e.Title, titleW))) +
			dimStyle.Render(fmt.Sprintf("%-*s ", folderW, cli.Truncate(e.FolderName, folderW))) +
			catStyle.Render(fmt.Sprintf("%-*s ", catW, cli.Truncate(string(e.Category), catW))) +
			moneyStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(a.currency(), e.Amount)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderDailySparkline(w int) string {
	t := theme.Active
	days := a.views.Daily
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(days) == 0 {
		return mutedStyle.Render("No days this month yet.")
	}

	vals := chronological(days)
	if len(vals) > w {
		vals = vals[len(vals)-w:]
	}

	today := days[0]
	return components.Sparkline(vals, t.Accent) + "\n" +
		mutedStyle.Render(fmt.Sprintf("Today: %s across %s",
			cli.FormatMoney(a.currency(), today.Total),
			cli.Plural(today.Expenses, "expense", "expenses")))
}
