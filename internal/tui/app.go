// Package tui provides the interactive Bubble Tea dashboard for spendfold.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/editor"
	"github.com/theirongolddev/spendfold/internal/export"
	"github.com/theirongolddev/spendfold/internal/ledger"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
	"github.com/theirongolddev/spendfold/internal/share"
	"github.com/theirongolddev/spendfold/internal/tui/components"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// Options configures NewApp.
type Options struct {
	Store  *ledger.Store
	IDs    model.IDSource
	Config config.Config
	Logger zerolog.Logger
	// StatePath is shown on the settings tab.
	StatePath string
	// Now defaults to time.Now.
	Now func() time.Time
	// SaveConfig persists settings edits. Defaults to config.Save.
	SaveConfig func(config.Config) error
	// Clipboard defaults to the system clipboard.
	Clipboard Clipboard
}

// Clipboard is the subset of clipboard access the dashboard needs.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }

const (
	tabHome = iota
	tabFolders
	tabSummary
	tabSettings
)

type modalKind int

const (
	modalNone modalKind = iota
	modalFolderAdd
	modalFolderRename
	modalExpenseAdd
	modalExpenseEdit
	modalDeleteFolder
	modalDeleteExpense
	modalShare
)

// formValues lives behind a pointer so the huh field bindings stay valid
// while Bubble Tea copies the App value around.
type formValues struct {
	name    string
	expense editor.Form
	confirm bool
}

type modalState struct {
	kind      modalKind
	form      *huh.Form
	vals      *formValues
	folderID  int64
	expenseID int64
	link      string
}

// storeChangedMsg is sent after a ledger observer fires.
type storeChangedMsg struct{}

type tickMsg struct{}

type flashExpiredMsg struct{ seq int }

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// App is the root Bubble Tea model.
type App struct {
	store      *ledger.Store
	ids        model.IDSource
	cfg        config.Config
	log        zerolog.Logger
	statePath  string
	now        func() time.Time
	saveConfig func(config.Config) error
	clip       Clipboard

	changes     chan struct{}
	unsubscribe func()

	views pipeline.Views

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	folders  foldersState
	settings settingsState
	modal    modalState

	flash      string
	flashLevel int
	flashSeq   int
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	flashDuration = 3 * time.Second
	tickInterval  = time.Minute
	modalMaxWidth = 72
)

// NewApp creates the dashboard over store. The app subscribes to store so
// every mutation, including ones it did not make itself, recomputes the views.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	save := opts.SaveConfig
	if save == nil {
		save = config.Save
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	ids := opts.IDs
	if ids == nil {
		tids := model.NewTimestampIDs()
		tids.Seed(opts.Store.Folders())
		ids = tids
	}

	changes := make(chan struct{}, 1)
	unsubscribe := opts.Store.Subscribe(func([]model.Folder) {
		// Coalesce: one pending signal is enough, the handler re-reads the store.
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	a := App{
		store:       opts.Store,
		ids:         ids,
		cfg:         opts.Config,
		log:         opts.Logger,
		statePath:   opts.StatePath,
		now:         now,
		saveConfig:  save,
		clip:        clip,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForChange(a.changes),
		tickCmd(),
	)
}

func (a *App) recompute() {
	a.views = pipeline.Compute(a.store.Folders(), a.now())
	a.folders.clamp(a.views.Folders)
}

func (a App) currency() string {
	return a.cfg.Appearance.CurrencySymbol
}

func (a App) compactMoney(v float64) string {
	return cli.FormatCompactMoney(a.currency(), v)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.modal.form != nil {
			a.modal.form = a.modal.form.WithWidth(a.modalWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case storeChangedMsg:
		a.recompute()
		return a, waitForChange(a.changes)

	case tickMsg:
		// Rolls the monthly and daily views over at midnight.
		a.recompute()
		return a, tickCmd()

	case flashExpiredMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
		}
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Str("path", msg.path).Msg("export failed")
			return a, a.setFlash("Export failed: "+msg.err.Error(), components.FlashWarn)
		}
		a.log.Info().Str("path", msg.path).Int("expenses", msg.count).Msg("exported")
		return a, a.setFlash(fmt.Sprintf("Exported %s to %s",
			cli.Plural(msg.count, "expense", "expenses"), msg.path), components.FlashOK)

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.modal.form != nil {
		return a.updateModalForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a.quit()
	}

	if a.modal.kind == modalShare {
		return a.updateShareModal(key)
	}
	if a.modal.form != nil {
		if key == "esc" {
			a.closeModal()
			return a, nil
		}
		return a.updateModalForm(msg)
	}

	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabFolders:
		if next, cmd, ok := a.updateFoldersKey(key); ok {
			return next, cmd
		}
	case tabSettings:
		if next, cmd, ok := a.updateSettingsKey(key); ok {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a.quit()
	case "n":
		return a, a.openFolderAdd()
	case "a":
		return a, a.openExpenseAdd()
	case "S":
		return a, a.openShare()
	case "I":
		return a, a.importFromClipboard()
	case "E":
		return a, exportCmd(config.ExportFilename(a.cfg), a.views.Flat)
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showHelp || a.modal.kind != modalNone {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabFolders {
			a.folders.move(-1, a.views.Folders)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabFolders {
			a.folders.move(1, a.views.Folders)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a, tea.Quit
}

// ─── Modals ─────────────────────────────────────────────────────

func (a App) modalWidth() int {
	w := a.width - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a *App) openModal(m modalState) tea.Cmd {
	if m.form != nil && a.width > 0 {
		m.form = m.form.WithWidth(a.modalWidth()).WithHeight(a.height)
	}
	a.modal = m
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

func (a *App) closeModal() {
	a.modal = modalState{}
}

func (a App) updateModalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.modal.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.modal.form = f
	}

	switch a.modal.form.State {
	case huh.StateCompleted:
		m := a.modal
		a.closeModal()
		return a, a.applyModal(m)
	case huh.StateAborted:
		a.closeModal()
		return a, nil
	}
	return a, cmd
}

// applyModal carries out a completed form against the ledger.
func (a *App) applyModal(m modalState) tea.Cmd {
	switch m.kind {
	case modalFolderAdd:
		f, err := a.store.AddFolder(m.vals.name)
		if err != nil {
			return a.fail("create folder", err)
		}
		a.recompute()
		a.folders.selectFolder(f.ID, a.views.Folders)
		return a.setFlash(fmt.Sprintf("Created folder %q", f.Name), components.FlashOK)

	case modalFolderRename:
		if err := a.store.RenameFolder(m.folderID, m.vals.name); err != nil {
			return a.fail("rename folder", err)
		}
		a.recompute()
		return a.setFlash("Folder renamed", components.FlashOK)

	case modalExpenseAdd:
		e, err := m.vals.expense.New(m.folderID, a.ids)
		if err != nil {
			return a.fail("add expense", err)
		}
		if _, err := a.store.AddExpense(m.folderID, e); err != nil {
			return a.fail("add expense", err)
		}
		a.recompute()
		return a.setFlash(fmt.Sprintf("Added %q", e.Title), components.FlashOK)

	case modalExpenseEdit:
		existing, err := a.store.FindExpense(m.expenseID)
		if err != nil {
			return a.fail("edit expense", err)
		}
		e, err := m.vals.expense.Apply(existing)
		if err != nil {
			return a.fail("edit expense", err)
		}
		if _, err := a.store.UpdateExpense(m.folderID, e); err != nil {
			return a.fail("edit expense", err)
		}
		a.recompute()
		return a.setFlash(fmt.Sprintf("Updated %q", e.Title), components.FlashOK)

	case modalDeleteFolder:
		if !m.vals.confirm {
			return nil
		}
		return a.deleteFolder(m.folderID)

	case modalDeleteExpense:
		if !m.vals.confirm {
			return nil
		}
		return a.deleteExpense(m.folderID, m.expenseID)
	}
	return nil
}

func (a *App) openFolderAdd() tea.Cmd {
	vals := &formValues{}
	return a.openModal(modalState{
		kind: modalFolderAdd,
		form: newNameForm("New folder", &vals.name),
		vals: vals,
	})
}

func (a *App) openFolderRename() tea.Cmd {
	f, ok := a.folders.selected(a.views.Folders)
	if !ok {
		return nil
	}
	vals := &formValues{name: f.Name}
	return a.openModal(modalState{
		kind:     modalFolderRename,
		form:     newNameForm("Rename folder", &vals.name),
		vals:     vals,
		folderID: f.ID,
	})
}

func (a *App) openExpenseAdd() tea.Cmd {
	f, ok := a.folders.selected(a.views.Folders)
	if !ok {
		return a.setFlash("Create a folder first: press n", components.FlashWarn)
	}
	vals := &formValues{expense: editor.Blank(model.DateOf(a.now()))}
	return a.openModal(modalState{
		kind:     modalExpenseAdd,
		form:     NewExpenseForm(&vals.expense, "New expense in "+f.Name),
		vals:     vals,
		folderID: f.ID,
	})
}

func (a *App) openExpenseEdit() tea.Cmd {
	e, ok := a.folders.selectedExpense(a.views.Folders)
	if !ok {
		return nil
	}
	vals := &formValues{expense: editor.FromExpense(e)}
	return a.openModal(modalState{
		kind:      modalExpenseEdit,
		form:      NewExpenseForm(&vals.expense, "Edit expense"),
		vals:      vals,
		folderID:  e.FolderID,
		expenseID: e.ID,
	})
}

func (a *App) openFolderDelete() tea.Cmd {
	f, ok := a.folders.selected(a.views.Folders)
	if !ok {
		return nil
	}
	if !a.cfg.General.ConfirmDeletes {
		return a.deleteFolder(f.ID)
	}
	vals := &formValues{}
	return a.openModal(modalState{
		kind: modalDeleteFolder,
		form: newConfirmForm(
			fmt.Sprintf("Delete folder %q?", f.Name),
			fmt.Sprintf("All %s in this folder will be deleted.", cli.Plural(len(f.Expenses), "expense", "expenses")),
			&vals.confirm,
		),
		vals:     vals,
		folderID: f.ID,
	})
}

func (a *App) openExpenseDelete() tea.Cmd {
	e, ok := a.folders.selectedExpense(a.views.Folders)
	if !ok {
		return nil
	}
	if !a.cfg.General.ConfirmDeletes {
		return a.deleteExpense(e.FolderID, e.ID)
	}
	vals := &formValues{}
	return a.openModal(modalState{
		kind: modalDeleteExpense,
		form: newConfirmForm(
			fmt.Sprintf("Delete %q?", e.Title),
			fmt.Sprintf("%s on %s", cli.FormatMoney(a.currency(), e.Amount), cli.FormatDate(e.Date)),
			&vals.confirm,
		),
		vals:      vals,
		folderID:  e.FolderID,
		expenseID: e.ID,
	})
}

func (a *App) deleteFolder(id int64) tea.Cmd {
	if err := a.store.DeleteFolder(id); err != nil {
		return a.fail("delete folder", err)
	}
	a.recompute()
	a.folders.focus = focusFolders
	return a.setFlash("Folder deleted", components.FlashOK)
}

func (a *App) deleteExpense(folderID, expenseID int64) tea.Cmd {
	if err := a.store.DeleteExpense(folderID, expenseID); err != nil {
		return a.fail("delete expense", err)
	}
	a.recompute()
	return a.setFlash("Expense deleted", components.FlashOK)
}

// ─── Share & import ─────────────────────────────────────────────

// shareMessage heads the share dialog.
const shareMessage = "Share this link with your friend to collaborate on expenses"

func (a *App) openShare() tea.Cmd {
	link, err := share.Link(config.ShareBaseURL(a.cfg), share.NewPayload(a.store.Folders()))
	if err != nil {
		return a.fail("build share link", err)
	}
	return a.openModal(modalState{kind: modalShare, link: link})
}

func (a App) updateShareModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "c", "y":
		if err := a.clip.WriteAll(a.modal.link); err != nil {
			a.log.Warn().Err(err).Msg("clipboard write failed")
			return a, a.setFlash("Clipboard unavailable, copy the link by hand", components.FlashWarn)
		}
		return a, a.setFlash("Link copied to clipboard!", components.FlashOK)
	case "esc", "q", "enter", "S":
		a.closeModal()
	}
	return a, nil
}

// importFromClipboard replaces the ledger with a share link or payload read
// from the clipboard. Malformed input leaves the ledger untouched.
func (a *App) importFromClipboard() tea.Cmd {
	raw, err := a.clip.ReadAll()
	if err != nil {
		a.log.Warn().Err(err).Msg("clipboard read failed")
		return a.setFlash("Clipboard unavailable", components.FlashWarn)
	}
	p, err := share.Consume(a.store, raw)
	if err != nil {
		a.log.Warn().Err(err).Msg("ignoring shared data")
		return a.setFlash("Clipboard does not hold a valid share link", components.FlashWarn)
	}
	a.recompute()
	return a.setFlash(fmt.Sprintf("Imported %s", cli.Plural(len(p.Folders), "folder", "folders")), components.FlashOK)
}

// ─── Flash messages ─────────────────────────────────────────────

func (a *App) setFlash(text string, level int) tea.Cmd {
	a.flashSeq++
	seq := a.flashSeq
	a.flash = text
	a.flashLevel = level
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

func (a *App) fail(action string, err error) tea.Cmd {
	a.log.Error().Err(err).Str("action", action).Msg("ledger update failed")
	return a.setFlash(fmt.Sprintf("Could not %s: %v", action, err), components.FlashWarn)
}

// ─── Commands ───────────────────────────────────────────────────

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return storeChangedMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func exportCmd(path string, flat []model.FlatExpense) tea.Cmd {
	return func() tea.Msg {
		err := export.WriteFile(path, flat)
		return exportDoneMsg{path: path, count: len(flat), err: err}
	}
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.modal.kind != modalNone {
		return a.viewModal()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendfold needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewModal() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	var body string
	if a.modal.kind == modalShare {
		body = a.renderShareBody()
	} else {
		body = a.modal.form.View()
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderShareBody() string {
	t := theme.Active
	w := a.modalWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	linkStyle := lipgloss.NewStyle().Foreground(t.Cyan).Width(w)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	okStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	b.WriteString(titleStyle.Render(shareMessage))
	b.WriteString("\n\n")
	b.WriteString(linkStyle.Render(a.modal.link))
	b.WriteString("\n\n")
	switch {
	case a.flash != "" && a.flashLevel == components.FlashOK:
		b.WriteString(okStyle.Render(a.flash))
		b.WriteString("\n\n")
	case a.flash != "":
		b.WriteString(warnStyle.Render(a.flash))
		b.WriteString("\n\n")
	}
	b.WriteString(hintStyle.Render("[c] copy link  [esc] close"))
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"h f s x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"Enter", "Open folder / Edit expense"},
			{"Esc", "Back to folder list"},
		}},
		{"Ledger", []struct{ key, desc string }{
			{"n", "New folder"},
			{"r", "Rename folder"},
			{"a", "Add expense to selected folder"},
			{"e", "Edit expense"},
			{"d", "Delete folder / expense"},
		}},
		{"Sharing", []struct{ key, desc string }{
			{"S", "Share link"},
			{"I", "Import share link from clipboard"},
			{"E", "Export to " + config.ExportFilename(a.cfg)},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case tabFolders:
		if a.folders.focus == focusExpenses {
			return "[a]dd  [e]dit  [d]elete  [esc] back  [?]help"
		}
		return "[n]ew  [r]ename  [d]elete  [a]dd expense  [?]help"
	case tabSettings:
		return "[j/k] navigate  [enter] edit  [?]help"
	default:
		return "[n]ew folder  [a]dd expense  [S]hare  [E]xport  [?]help  [q]uit"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	sum := a.views.Summary
	info := fmt.Sprintf("%s · %s · %s",
		cli.Plural(sum.FolderCount, "folder", "folders"),
		cli.Plural(sum.ExpenseCount, "expense", "expenses"),
		cli.FormatMoney(a.currency(), sum.Total))
	statusBar := components.RenderStatusBar(w, a.statusHints(), info, a.flash, a.flashLevel)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabHome:
		content = a.renderHomeTab(cw)
	case tabFolders:
		content = a.renderFoldersTab(cw, contentH)
	case tabSummary:
		content = a.renderSummaryTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds X-axis labels for a daily series. days is sorted
// newest-first; labels are returned oldest-left.
func chartDateLabels(days []model.DailyTotal) []string {
	n := len(days)
	labels := make([]string, n)
	for i, d := range days {
		pos := n - 1 - i
		if pos == 0 {
			labels[pos] = d.Date.Format("Jan 2")
			continue
		}
		labels[pos] = strconv.Itoa(d.Date.Day())
	}
	return labels
}

// chronological returns the totals of days oldest-first as floats.
func chronological(days []model.DailyTotal) []float64 {
	vals := make([]float64, len(days))
	for i, d := range days {
		vals[len(days)-1-i] = d.Total.InexactFloat64()
	}
	return vals
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// One separator column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
