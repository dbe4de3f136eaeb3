package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Flash levels for the status bar message slot.
const (
	FlashInfo = iota
	FlashOK
	FlashWarn
)

// RenderStatusBar renders the bottom status bar: key hints on the left, an
// optional flash message and the data summary on the right.
func RenderStatusBar(width int, hints, info, flash string, level int) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.SurfaceHover)
	hintStyle := base.Foreground(t.TextMuted)
	infoStyle := base.Foreground(t.TextDim)

	flashStyle := base.Foreground(t.Accent).Bold(true)
	switch level {
	case FlashOK:
		flashStyle = base.Foreground(t.GreenBright).Bold(true)
	case FlashWarn:
		flashStyle = base.Foreground(t.Orange).Bold(true)
	}

	left := hintStyle.Render(" " + hints)
	right := infoStyle.Render(info + " ")
	if flash != "" {
		right = flashStyle.Render(flash) + infoStyle.Render("  ") + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Drop the hints before the flash message.
		left = ""
		gap = max(0, width-lipgloss.Width(right))
	}

	return left + base.Render(strings.Repeat(" ", gap)) + right
}
