package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Home", Key: 'h', KeyPos: 0},
	{Name: "Folders", Key: 'f', KeyPos: 0},
	{Name: "Summary", Key: 's', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// tabPadding is the horizontal padding on each side of a tab label.
const tabPadding = 1

// TabVisualWidth returns the rendered width of tab. Inactive tabs whose key
// is not part of the name carry a "[k]" suffix.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2*tabPadding
	if !active && tab.KeyPos < 0 {
		w += 3
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceBright).
		Bold(true).
		Padding(0, tabPadding)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	padStyle := lipgloss.NewStyle().Background(t.Surface)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	pad := padStyle.Render(strings.Repeat(" ", tabPadding))

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}

		var label string
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			label = inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
				keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])
		} else {
			label = inactiveStyle.Render(tab.Name) +
				sepStyle.Render("[") + keyStyle.Render(string(tab.Key)) + sepStyle.Render("]")
		}
		parts = append(parts, pad+label+pad)
	}

	row := strings.Join(parts, sepStyle.Render("│"))
	gap := width - lipgloss.Width(row)
	if gap > 0 {
		row += padStyle.Render(strings.Repeat(" ", gap))
	}
	return row
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
