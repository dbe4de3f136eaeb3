package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/export"
	"github.com/theirongolddev/spendfold/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export all expenses to an xlsx spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	path := config.ExportFilename(appCfg)
	if len(args) == 1 {
		path = args[0]
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	flat := pipeline.Flatten(s.ledger.Folders())
	progress("  Writing %d expenses...\n", len(flat))
	if err := export.WriteFile(path, flat); err != nil {
		return err
	}
	fmt.Printf("  Exported %d expenses to %s (sheet %q)\n", len(flat), path, export.SheetName)
	return nil
}
