package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/pipeline"
)

func runHome(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	views := pipeline.Compute(s.ledger.Folders(), timeNow())
	sym := appCfg.Appearance.CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDFOLD"))
	fmt.Println()

	if len(views.Folders) == 0 {
		fmt.Println("  No folders yet.")
		fmt.Println("  Create one with `spendfold folder add <name>`.")
		fmt.Println()
		return nil
	}

	sum := views.Summary
	names := strings.Join(sum.FolderNames, ", ")
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Quick Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Expenses", cli.FormatMoney(sym, sum.Total)},
			{"This Month", cli.FormatMoney(sym, sum.MonthTotal)},
			{"Categories", cli.FormatNumber(int64(sum.CategoryCount))},
			{"Folders", cli.FormatNumber(int64(sum.FolderCount))},
			{"---"},
			{"Folder Names", cli.Truncate(names, 48)},
		},
		Numeric: []bool{false, true},
	}))
	fmt.Println()

	if len(views.Recent) == 0 {
		fmt.Println(cli.RenderMuted("  No expenses yet. Add one with `spendfold expense add`."))
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(views.Recent))
	for _, e := range views.Recent {
		rows = append(rows, []string{
			cli.Truncate(e.Title, 28),
			cli.FormatMoney(sym, e.Amount),
			string(e.Category),
			e.FolderName,
			cli.FormatDate(e.Date),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent Expenses",
		Headers: []string{"Title", "Amount", "Category", "Folder", "Date"},
		Rows:    rows,
		Numeric: []bool{false, true},
	}))
	fmt.Println()
	return nil
}
