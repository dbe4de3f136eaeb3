package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/tui/components"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Folders tab panes. The folder list is the zero value so it has focus first.
const (
	focusFolders = iota
	focusExpenses
)

// foldersState holds the folders tab selection.
type foldersState struct {
	cursor    int // selected folder
	expCursor int // selected expense within that folder
	focus     int
	offset    int // scroll offset of the expense list
}

func (s foldersState) selected(folders []model.Folder) (model.Folder, bool) {
	if s.cursor < 0 || s.cursor >= len(folders) {
		return model.Folder{}, false
	}
	return folders[s.cursor], true
}

func (s foldersState) selectedExpense(folders []model.Folder) (model.Expense, bool) {
	f, ok := s.selected(folders)
	if !ok || s.focus != focusExpenses {
		return model.Expense{}, false
	}
	if s.expCursor < 0 || s.expCursor >= len(f.Expenses) {
		return model.Expense{}, false
	}
	return f.Expenses[s.expCursor], true
}

// clamp keeps both cursors inside the current folders after a change.
func (s *foldersState) clamp(folders []model.Folder) {
	if s.cursor >= len(folders) {
		s.cursor = len(folders) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}

	n := 0
	if f, ok := s.selected(folders); ok {
		n = len(f.Expenses)
	}
	if s.expCursor >= n {
		s.expCursor = n - 1
	}
	if s.expCursor < 0 {
		s.expCursor = 0
	}
	if n == 0 {
		s.focus = focusFolders
	}
}

func (s *foldersState) move(delta int, folders []model.Folder) {
	if s.focus == focusExpenses {
		s.expCursor += delta
	} else {
		s.cursor += delta
		s.expCursor = 0
		s.offset = 0
	}
	s.clamp(folders)
}

// jump moves the focused cursor to the first or last row.
func (s *foldersState) jump(last bool, folders []model.Folder) {
	target := 0
	if last {
		target = len(folders)
		if f, ok := s.selected(folders); ok && s.focus == focusExpenses {
			target = len(f.Expenses)
		}
	}
	if s.focus == focusExpenses {
		s.expCursor = target
	} else {
		s.cursor = target
		s.expCursor = 0
		s.offset = 0
	}
	s.clamp(folders)
}

func (s *foldersState) selectFolder(id int64, folders []model.Folder) {
	for i, f := range folders {
		if f.ID == id {
			s.cursor = i
			s.expCursor = 0
			s.offset = 0
			s.focus = focusFolders
			return
		}
	}
}

// updateFoldersKey handles keys specific to the folders tab. ok is false when
// the key should fall through to the global bindings.
func (a App) updateFoldersKey(key string) (tea.Model, tea.Cmd, bool) {
	fs := &a.folders

	switch key {
	case "j", "down":
		fs.move(1, a.views.Folders)
	case "k", "up":
		fs.move(-1, a.views.Folders)
	case "g":
		fs.jump(false, a.views.Folders)
	case "G":
		fs.jump(true, a.views.Folders)
	case "enter", "l", "tab":
		if fs.focus == focusExpenses {
			return a, a.openExpenseEdit(), true
		}
		if f, ok := fs.selected(a.views.Folders); ok && len(f.Expenses) > 0 {
			fs.focus = focusExpenses
		}
	case "esc", "backspace", "shift+tab":
		fs.focus = focusFolders
	case "r":
		if fs.focus != focusFolders {
			return a, nil, true
		}
		return a, a.openFolderRename(), true
	case "e":
		return a, a.openExpenseEdit(), true
	case "d", "delete":
		if fs.focus == focusExpenses {
			return a, a.openExpenseDelete(), true
		}
		return a, a.openFolderDelete(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderFoldersTab(cw, h int) string {
	t := theme.Active
	folders := a.views.Folders

	if len(folders) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Folders",
			muted.Render("No folders yet. Press [n] to create one, for example \"Goa trip\"."), cw)
	}

	leftW := cw / 3
	if leftW < 30 {
		leftW = 30
	}
	rightW := cw - leftW

	left := components.ContentCard("Folders", a.renderFolderList(leftW, h), leftW)

	f, _ := a.folders.selected(folders)
	title := fmt.Sprintf("%s · %s · %s", f.Name,
		cli.Plural(len(f.Expenses), "expense", "expenses"),
		cli.FormatMoney(a.currency(), f.Total()))
	right := components.ContentCard(title, a.renderExpenseList(f, rightW, h), rightW)

	return components.CardRow([]string{left, right})
}

func (a App) renderFolderList(w, h int) string {
	t := theme.Active
	fs := a.folders
	inner := components.CardInnerWidth(w)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selBg := t.SurfaceBright
	if fs.focus == focusFolders {
		selBg = t.AccentDim
	}
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(selBg).Bold(true)
	selMuted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(selBg)

	visible := max(h-4, 3)
	start := 0
	if fs.cursor >= visible {
		start = fs.cursor - visible + 1
	}

	var b strings.Builder
	for i := start; i < len(a.views.Folders) && i < start+visible; i++ {
		f := a.views.Folders[i]
		count := fmt.Sprintf("%d", len(f.Expenses))
		nameW := inner - len(count) - 3
		name := cli.Truncate(f.Name, nameW)
		gap := strings.Repeat(" ", max(0, inner-lipgloss.Width(name)-len(count)-2))

		if i == fs.cursor {
			b.WriteString(selStyle.Render("▸ " + name))
			b.WriteString(selMuted.Render(gap + count))
		} else {
			b.WriteString(rowStyle.Render("  " + name))
			b.WriteString(mutedStyle.Render(gap + count))
		}
		if i < len(a.views.Folders)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderExpenseList(f model.Folder, w, h int) string {
	t := theme.Active
	fs := a.folders
	inner := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(f.Expenses) == 0 {
		return mutedStyle.Render("No expenses in this folder. Press [a] to add one.")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	moneyStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.AccentDim).Bold(true)

	const (
		dateW   = 12
		amountW = 14
	)
	catW := 18
	if a.isCompactLayout() {
		catW = 14
	}
	titleW := max(inner-dateW-catW-amountW-3, 8)

	row := func(date, title, cat, amount string) (string, string) {
		left := fmt.Sprintf("%-*s %-*s %-*s ", dateW, date, titleW, cli.Truncate(title, titleW), catW, cli.Truncate(cat, catW))
		return left, fmt.Sprintf("%*s", amountW, amount)
	}

	var b strings.Builder
	hl, hr := row("Date", "Title", "Category", "Amount")
	b.WriteString(headerStyle.Render(hl + hr))
	b.WriteString("\n")

	visible := max(h-6, 3)
	offset := fs.offset
	if fs.expCursor < offset {
		offset = fs.expCursor
	}
	if fs.expCursor >= offset+visible {
		offset = fs.expCursor - visible + 1
	}

	for i := offset; i < len(f.Expenses) && i < offset+visible; i++ {
		e := f.Expenses[i]
		l, r := row(cli.FormatDate(e.Date), e.Title, string(e.Category), cli.FormatMoney(a.currency(), e.Amount))
		if fs.focus == focusExpenses && i == fs.expCursor {
			b.WriteString(selStyle.Render(l + r))
		} else {
			b.WriteString(rowStyle.Render(l))
			b.WriteString(moneyStyle.Render(r))
		}
		b.WriteString("\n")
	}

	if e, ok := fs.selectedExpense(a.views.Folders); ok {
		b.WriteString(a.renderExpenseDetail(e, inner))
	} else {
		b.WriteString(mutedStyle.Render("[enter] browse expenses  [a] add"))
	}
	return b.String()
}

func (a App) renderExpenseDetail(e model.Expense, w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var parts []string
	if e.PaymentMethod != "" {
		parts = append(parts, labelStyle.Render("Paid: ")+valueStyle.Render(string(e.PaymentMethod)))
	}
	if len(e.Tags) > 0 {
		parts = append(parts, labelStyle.Render("Tags: ")+valueStyle.Render(strings.Join(e.Tags, ", ")))
	}
	if e.Description != "" {
		parts = append(parts, labelStyle.Render("Note: ")+valueStyle.Render(cli.Truncate(e.Description, w-6)))
	}
	if len(parts) == 0 {
		return labelStyle.Render("[e] edit  [d] delete")
	}
	return strings.Join(parts, "\n")
}
