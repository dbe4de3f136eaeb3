package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/tui/components"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldShareURL
	settingsFieldExport
	settingsFieldConfirm
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // show "Saved!" after a successful write
	saveErr error // non-nil if the last edit was rejected or not written
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		next, cmd := a.settingsStartEdit()
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "₹"
		ti.CharLimit = 8
		ti.SetValue(a.cfg.Appearance.CurrencySymbol)
	case settingsFieldShareURL:
		ti.Placeholder = "https://example.com/expenses/"
		ti.SetValue(a.cfg.Share.BaseURL)
	case settingsFieldExport:
		ti.Placeholder = "expenses.xlsx"
		ti.SetValue(a.cfg.Export.Filename)
	case settingsFieldConfirm:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.cfg.General.ConfirmDeletes))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited value and writes the config. A rejected
// value leaves the config unchanged.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Known(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldCurrency:
		cfg.Appearance.CurrencySymbol = val
	case settingsFieldShareURL:
		if err := validateBaseURL(val); err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.Share.BaseURL = val
	case settingsFieldExport:
		if val == "" {
			a.settings.saveErr = errors.New("file name is required")
			return
		}
		cfg.Export.Filename = val
	case settingsFieldConfirm:
		b, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("%q is not true or false", val)
			return
		}
		cfg.General.ConfirmDeletes = b
	}

	if err := a.saveConfig(cfg); err != nil {
		a.log.Error().Err(err).Msg("saving config")
		a.settings.saveErr = err
		return
	}
	a.cfg = cfg
	a.settings.saveErr = nil
	theme.SetActive(cfg.Appearance.Theme)
	a.log.Debug().Str("path", config.Path()).Msg("config saved")
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	orUnset := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Currency Symbol", orUnset(cfg.Appearance.CurrencySymbol)},
		{"Share Base URL", orUnset(config.ShareBaseURL(cfg))},
		{"Export File", config.ExportFilename(cfg)},
		{"Confirm Deletes", strconv.FormatBool(cfg.General.ConfirmDeletes)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("State database:  ") + valueStyle.Render(orUnset(a.statePath)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Folders:         ") + valueStyle.Render(cli.FormatNumber(int64(a.views.Summary.FolderCount))) + "\n")
	infoBody.WriteString(labelStyle.Render("Expenses:        ") + valueStyle.Render(cli.FormatNumber(int64(a.views.Summary.ExpenseCount))) + "\n")
	infoBody.WriteString(labelStyle.Render("Last computed:   ") + valueStyle.Render(cli.FormatAgo(a.views.ComputedAt)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
