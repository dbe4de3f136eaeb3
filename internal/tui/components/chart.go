package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Bar is one labelled row of an HBarChart.
type Bar struct {
	Label string
	Value float64
	// Text is shown after the bar, e.g. a formatted amount.
	Text  string
	Color lipgloss.Color
}

// HBarChart renders one horizontal bar per item, scaled to the largest value.
// Rows with a zero value keep their label so fixed category lists stay aligned.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	textW := 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}

	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	trackStyle := lipgloss.NewStyle().Foreground(t.SurfaceBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var sb strings.Builder
	for i, b := range bars {
		filled := 0
		if peak > 0 && b.Value > 0 {
			filled = int(math.Round(b.Value / peak * float64(barW)))
			filled = max(filled, 1)
		}
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		sb.WriteString(labelStyle.Render(b.Label + strings.Repeat(" ", labelW-lipgloss.Width(b.Label))))
		sb.WriteString(spaceStyle.Render(" "))
		sb.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		sb.WriteString(trackStyle.Render(strings.Repeat("░", barW-filled)))
		sb.WriteString(spaceStyle.Render(" "))
		sb.WriteString(textStyle.Render(strings.Repeat(" ", textW-lipgloss.Width(b.Text)) + b.Text))
		if i < len(bars)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// ColumnChart renders one column per value, oldest first, with the peak
// value labelled on the top row and the first and last x labels underneath.
// axis formats the peak label. When there are more values than columns,
// adjacent values are summed into buckets.
func ColumnChart(values []float64, labels []string, axis func(float64) string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 2 || width < 10 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	top := axis(peak)
	yLabelW := max(lipgloss.Width(top), 1)
	plotW := width - yLabelW - 1
	if plotW < 1 {
		return Sparkline(values, color)
	}

	if len(values) > plotW {
		values, labels = bucketValues(values, labels, plotW)
		peak = 0
		for _, v := range values {
			peak = max(peak, v)
		}
		top = axis(peak)
	}
	if peak == 0 {
		peak = 1
	}

	n := len(values)
	colW := max(plotW/n, 1)
	barW := max(colW-1, 1)
	if barW > 4 {
		barW = 4
	}
	gapW := colW - barW
	plotUsed := n * colW

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = top
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for _, v := range values {
			// Height of this value in eighths of a row, relative to the row's floor.
			fill := int(math.Round(v/peak*float64(height*8))) - (row-1)*8
			cell := ' '
			switch {
			case fill >= 8:
				cell = '█'
			case fill > 0:
				cell = eighths[fill]
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(cell), barW)))
			if gapW > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gapW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", plotUsed)))

	if len(labels) == n {
		first, last := labels[0], labels[n-1]
		gap := plotUsed - lipgloss.Width(first) - lipgloss.Width(last)
		line := first
		if n > 1 && gap >= 1 {
			line += strings.Repeat(" ", gap) + last
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + line))
	}
	return b.String()
}

// bucketValues sums runs of adjacent values into n buckets. Each bucket keeps
// the label of its first value.
func bucketValues(values []float64, labels []string, n int) ([]float64, []string) {
	n = max(n, 1)
	out := make([]float64, n)
	var outLabels []string
	if len(labels) == len(values) {
		outLabels = make([]string, n)
	}
	for i, v := range values {
		j := i * n / len(values)
		if outLabels != nil && outLabels[j] == "" {
			outLabels[j] = labels[i]
		}
		out[j] += v
	}
	return out, outLabels
}
