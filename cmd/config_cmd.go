package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    State database:  %s\n", statePath())
	fmt.Printf("    Confirm deletes: %v\n", cfg.General.ConfirmDeletes)
	fmt.Println()

	fmt.Println("  [Share]")
	fmt.Printf("    Base URL: %s\n", config.ShareBaseURL(cfg))
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Filename: %s\n", config.ExportFilename(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", config.LogLevel(cfg))
	fmt.Printf("    File:  %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:  %s\n", cfg.Server.Addr)
	fmt.Printf("    Interval: %ds\n", cfg.Server.IntervalSec)
	fmt.Println()

	fmt.Println("  Run `spendfold setup` to reconfigure.")
	return nil
}
