package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Println()
	fmt.Println("  Welcome to spendfold!")
	fmt.Println()

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}
	vals.ApplyTo(&cfg)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `spendfold setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
