package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
)

var timeNow = time.Now

var (
	flagSummaryMonth   string
	flagSummaryNonZero bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly spending by category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagSummaryMonth, "month", "", "Month as YYYY-MM (default current month)")
	summaryCmd.Flags().BoolVar(&flagSummaryNonZero, "nonzero", false, "Hide categories with no spending")
	rootCmd.AddCommand(summaryCmd)
}

func summaryMonth() (time.Time, error) {
	if flagSummaryMonth == "" {
		return timeNow(), nil
	}
	t, err := time.ParseInLocation("2006-01", flagSummaryMonth, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q: want YYYY-MM", flagSummaryMonth)
	}
	return t, nil
}

func runSummary(_ *cobra.Command, _ []string) error {
	month, err := summaryMonth()
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	folders := s.ledger.Folders()
	flat := pipeline.Flatten(folders)
	totals := pipeline.MonthlyCategoryTotals(flat, month)
	sum := pipeline.Summarize(folders, month)
	sym := appCfg.Appearance.CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY EXPENSES  %s", month.Format("January 2006"))))
	fmt.Println()

	if len(folders) == 0 {
		fmt.Println("  No folders yet. Create one with `spendfold folder add <name>`.")
		return nil
	}

	peak := 0.0
	labelWidth := 0
	for _, ct := range totals {
		peak = max(peak, ct.Total.InexactFloat64())
		labelWidth = max(labelWidth, len(ct.Category))
	}

	for _, ct := range totals {
		if flagSummaryNonZero && ct.Total.IsZero() {
			continue
		}
		fmt.Println(cli.RenderHorizontalBar(
			string(ct.Category), labelWidth,
			ct.Total.InexactFloat64(), peak, 30,
			cli.RenderMoney(cli.FormatMoney(sym, ct.Total)),
		))
	}
	fmt.Println()

	monthFlat := pipeline.FilterByMonth(flat, month)
	rows := [][]string{
		{"Month Total", cli.FormatMoney(sym, sum.MonthTotal)},
		{"Month Expenses", cli.FormatNumber(int64(len(monthFlat)))},
		{"---"},
		{"All-time Total", cli.FormatMoney(sym, sum.Total)},
		{"Categories Used", cli.FormatNumber(int64(sum.CategoryCount))},
		{"Folders", cli.FormatNumber(int64(sum.FolderCount))},
	}
	if top := pipeline.TopCategories(totals); len(top) > 0 {
		rows = append(rows, []string{"---"}, []string{
			"Top Category",
			fmt.Sprintf("%s (%s)", top[0].Category, cli.FormatShare(top[0].Total, sum.MonthTotal)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
		Numeric: []bool{false, true},
	}))

	if isCurrentMonth(month) {
		days := pipeline.DailyTotals(flat, month)
		values := make([]float64, len(days))
		for i, d := range days {
			// oldest first for the sparkline
			values[len(days)-1-i] = d.Total.InexactFloat64()
		}
		fmt.Println()
		fmt.Printf("  Daily  %s\n", cli.RenderSparkline(values))
	}
	fmt.Println()
	return nil
}

func isCurrentMonth(t time.Time) bool {
	first, _ := model.MonthBounds(timeNow())
	tf, _ := model.MonthBounds(t)
	return first.Compare(tf) == 0
}
