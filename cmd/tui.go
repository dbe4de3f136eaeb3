package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/tui"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Launch interactive TUI dashboard",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLogToFile: "true"},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.Options{
		Store:     s.ledger,
		IDs:       s.ids,
		Config:    appCfg,
		Logger:    logger,
		StatePath: s.db.Path(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
