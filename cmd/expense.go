package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/editor"
	"github.com/theirongolddev/spendfold/internal/ledger"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
	"github.com/theirongolddev/spendfold/internal/tui"
)

var (
	flagExpFolder      string
	flagExpTitle       string
	flagExpAmount      string
	flagExpCategory    string
	flagExpDate        string
	flagExpDescription string
	flagExpPayment     string
	flagExpTags        string
	flagExpInteractive bool
	flagExpYes         bool

	flagListFolder   string
	flagListCategory string
	flagListMonth    bool
	flagListLimit    int
)

var errExpenseNotSaved = errors.New("expense not saved")

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses", "exp"},
	Short:   "Record and manage expenses",
	RunE:    runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Args:  cobra.NoArgs,
	RunE:  runExpenseAdd,
}

var expenseEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an expense; unspecified fields keep their values",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseEdit,
}

var expenseRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseRm,
}

var expenseLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List expenses",
	Args:  cobra.NoArgs,
	RunE:  runExpenseList,
}

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, expenseEditCmd} {
		c.Flags().StringVarP(&flagExpTitle, "title", "t", "", "Expense title")
		c.Flags().StringVarP(&flagExpAmount, "amount", "a", "", "Amount, e.g. 12.50")
		c.Flags().StringVarP(&flagExpCategory, "category", "c", "", "Category, e.g. \"Outside Food\"")
		c.Flags().StringVarP(&flagExpDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
		c.Flags().StringVar(&flagExpDescription, "description", "", "Optional description")
		c.Flags().StringVarP(&flagExpPayment, "payment", "p", "", "Optional payment method, e.g. UPI")
		c.Flags().StringVar(&flagExpTags, "tags", "", "Optional comma separated tags")
		c.Flags().BoolVarP(&flagExpInteractive, "interactive", "i", false, "Fill the fields in a form")
	}
	expenseAddCmd.Flags().StringVarP(&flagExpFolder, "folder", "f", "", "Folder id or name (optional with a single folder)")
	expenseRmCmd.Flags().BoolVarP(&flagExpYes, "yes", "y", false, "Delete without asking")

	for _, c := range []*cobra.Command{expenseCmd, expenseLsCmd} {
		c.Flags().StringVarP(&flagListFolder, "folder", "f", "", "Filter to folder (substring match)")
		c.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter to category (substring match)")
		c.Flags().BoolVarP(&flagListMonth, "month", "m", false, "Only the current month")
		c.Flags().IntVarP(&flagListLimit, "limit", "n", 0, "Show at most n rows")
	}

	expenseCmd.AddCommand(expenseAddCmd, expenseEditCmd, expenseRmCmd, expenseLsCmd)
	rootCmd.AddCommand(expenseCmd)
}

func pickFolder(st *ledger.Store, ref string) (model.Folder, error) {
	if ref != "" {
		return resolveFolder(st, ref)
	}
	folders := st.Folders()
	switch len(folders) {
	case 0:
		return model.Folder{}, errors.New("no folders yet: create one with `spendfold folder add <name>`")
	case 1:
		return folders[0], nil
	default:
		return model.Folder{}, errors.New("several folders exist: choose one with --folder")
	}
}

// applyFlags copies explicitly set flags onto the form.
func applyFlags(cmd *cobra.Command, f *editor.Form) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("title", &f.Title, flagExpTitle)
	set("amount", &f.Amount, flagExpAmount)
	set("category", &f.Category, flagExpCategory)
	set("date", &f.Date, flagExpDate)
	set("description", &f.Description, flagExpDescription)
	set("payment", &f.PaymentMethod, flagExpPayment)
	set("tags", &f.Tags, flagExpTags)
}

func wantForm(cmd *cobra.Command) bool {
	if flagExpInteractive {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	for _, name := range []string{"title", "amount", "category"} {
		if cmd.Flags().Changed(name) {
			return false
		}
	}
	return true
}

// runForm shows the expense form. The boolean is false when the user aborted.
func runForm(f *editor.Form, title string) (bool, error) {
	err := tui.NewExpenseForm(f, title).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return err == nil, err
}

func reportFieldErrors(err error) error {
	fes := editor.FieldErrors(err)
	if len(fes) == 0 {
		return err
	}
	for _, fe := range fes {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", fe.Field, fe.Err)
	}
	return errExpenseNotSaved
}

func runExpenseAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	folder, err := pickFolder(s.ledger, flagExpFolder)
	if err != nil {
		return err
	}

	form := editor.Blank(model.Today())
	applyFlags(cmd, &form)
	if wantForm(cmd) {
		ok, err := runForm(&form, fmt.Sprintf("New expense in %s", folder.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	e, err := form.New(folder.ID, s.ids)
	if err != nil {
		return reportFieldErrors(err)
	}
	saved, err := s.ledger.AddExpense(folder.ID, e)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %q (%s) to %s, id %d\n",
		saved.Title, cli.FormatMoney(appCfg.Appearance.CurrencySymbol, saved.Amount), folder.Name, saved.ID)
	return nil
}

func runExpenseEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	existing, err := s.ledger.FindExpense(id)
	if err != nil {
		return err
	}

	form := editor.FromExpense(existing)
	applyFlags(cmd, &form)
	if flagExpInteractive {
		ok, err := runForm(&form, "Edit expense")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	updated, err := form.Apply(existing)
	if err != nil {
		return reportFieldErrors(err)
	}
	if _, err := s.ledger.UpdateExpense(existing.FolderID, updated); err != nil {
		return err
	}
	fmt.Printf("  Updated expense %d\n", existing.ID)
	return nil
}

func runExpenseRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.ledger.FindExpense(id)
	if err != nil {
		return err
	}

	ok, err := confirmDelete(
		fmt.Sprintf("Delete expense %q?", e.Title),
		fmt.Sprintf("%s, %s on %s.", cli.FormatMoney(appCfg.Appearance.CurrencySymbol, e.Amount), e.Category, e.Date),
		flagExpYes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("  Cancelled.")
		return nil
	}

	if err := s.ledger.DeleteExpense(e.FolderID, e.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted expense %q\n", e.Title)
	return nil
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	flat := pipeline.Flatten(s.ledger.Folders())
	flat = pipeline.FilterByFolder(flat, flagListFolder)
	flat = pipeline.FilterByCategory(flat, flagListCategory)
	if flagListMonth {
		flat = pipeline.FilterByMonth(flat, timeNow())
	}
	if flagListLimit > 0 && len(flat) > flagListLimit {
		flat = flat[:flagListLimit]
	}

	if len(flat) == 0 {
		fmt.Println("\n  No expenses match.")
		return nil
	}

	sym := appCfg.Appearance.CurrencySymbol
	total := decimal.Zero
	rows := make([][]string, 0, len(flat)+2)
	for _, e := range flat {
		total = total.Add(e.Amount)
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			cli.Truncate(e.Title, 28),
			cli.FormatMoney(sym, e.Amount),
			string(e.Category),
			e.FolderName,
			e.Date.String(),
		})
	}
	rows = append(rows, []string{"---"}, []string{"", "Total", cli.FormatMoney(sym, total), "", "", ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Expenses (%d)", len(flat)),
		Headers: []string{"ID", "Title", "Amount", "Category", "Folder", "Date"},
		Rows:    rows,
		Numeric: []bool{false, false, true},
	}))
	return nil
}
