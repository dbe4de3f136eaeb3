// Package components provides the reusable widgets of the spendfold dashboard.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Metric is one headline number shown in a MetricCard.
type Metric struct {
	Label string
	Value string
	// Hint is an optional muted line under the value.
	Hint string
	// Color overrides the value color when set.
	Color lipgloss.Color
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

func cardStyle(outerWidth int) lipgloss.Style {
	t := theme.Active

	contentWidth := outerWidth - 2 // border
	if contentWidth < 10 {
		contentWidth = 10
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)
}

// MetricCard renders a small card with a label, a value and an optional hint.
// outerWidth is the total rendered width including border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	valueColor := t.TextPrimary
	if m.Color != "" {
		valueColor = m.Color
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Hint != "" {
		content += "\n" + hintStyle.Render(m.Hint)
	}

	return cardStyle(outerWidth).Render(content)
}

// MetricCardRow renders metrics side by side across totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = MetricCard(m, widths[i])
	}
	return CardRow(rendered)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle(outerWidth).Render(content)
}

// CardRow joins pre-rendered cards horizontally. Shorter cards are padded
// with background-styled lines so the row keeps a solid fill.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}

	tallest := 0
	for _, c := range cards {
		if h := lipgloss.Height(c); h > tallest {
			tallest = h
		}
	}

	fill := lipgloss.NewStyle().Background(theme.Active.Background)
	padded := make([]string, len(cards))
	for i, c := range cards {
		h := lipgloss.Height(c)
		if h == tallest {
			padded[i] = c
			continue
		}
		blank := fill.Render(strings.Repeat(" ", lipgloss.Width(c)))
		padded[i] = c + strings.Repeat("\n"+blank, tallest-h)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4 // 2 border + 2 padding
	if w < 10 {
		w = 10
	}
	return w
}
