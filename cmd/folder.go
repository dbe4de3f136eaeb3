package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/cli"
)

var flagFolderYes bool

var folderCmd = &cobra.Command{
	Use:     "folder",
	Aliases: []string{"folders"},
	Short:   "Manage expense folders",
	RunE:    runFolderList,
}

var folderAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a folder",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFolderAdd,
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <folder> <new name>",
	Short: "Rename a folder (by id or name)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFolderRename,
}

var folderRmCmd = &cobra.Command{
	Use:     "rm <folder>",
	Aliases: []string{"delete"},
	Short:   "Delete a folder and all of its expenses",
	Args:    cobra.ExactArgs(1),
	RunE:    runFolderRm,
}

var folderLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List folders",
	Args:  cobra.NoArgs,
	RunE:  runFolderList,
}

func init() {
	folderRmCmd.Flags().BoolVarP(&flagFolderYes, "yes", "y", false, "Delete without asking")

	folderCmd.AddCommand(folderAddCmd, folderRenameCmd, folderRmCmd, folderLsCmd)
	rootCmd.AddCommand(folderCmd)
}

func runFolderAdd(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := s.ledger.AddFolder(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("  Created folder %q (id %d)\n", f.Name, f.ID)
	return nil
}

func runFolderRename(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := resolveFolder(s.ledger, args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	if err := s.ledger.RenameFolder(f.ID, name); err != nil {
		return err
	}
	fmt.Printf("  Renamed %q to %q\n", f.Name, strings.TrimSpace(name))
	return nil
}

func runFolderRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := resolveFolder(s.ledger, args[0])
	if err != nil {
		return err
	}

	ok, err := confirmDelete(
		fmt.Sprintf("Delete folder %q?", f.Name),
		fmt.Sprintf("All %s in this folder will be deleted.", cli.Plural(len(f.Expenses), "expense", "expenses")),
		flagFolderYes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  Cancelled.")
		return nil
	}

	if err := s.ledger.DeleteFolder(f.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted folder %q and %s\n", f.Name, cli.Plural(len(f.Expenses), "expense", "expenses"))
	return nil
}

func runFolderList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	folders := s.ledger.Folders()
	if len(folders) == 0 {
		fmt.Println("\n  No folders yet. Create one with `spendfold folder add <name>`.")
		return nil
	}

	sym := appCfg.Appearance.CurrencySymbol
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			cli.FormatNumber(int64(len(f.Expenses))),
			cli.FormatMoney(sym, f.Total()),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Folders",
		Headers: []string{"ID", "Name", "Expenses", "Total"},
		Rows:    rows,
		Numeric: []bool{false, false, true, true},
	}))
	return nil
}
