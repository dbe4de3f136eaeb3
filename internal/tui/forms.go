package tui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/editor"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/tui/theme"
)

// NewExpenseForm builds the add/edit expense form bound to f. Each field
// validates through the editor so the form can only complete with input that
// editor.Form.New and Apply accept.
func NewExpenseForm(f *editor.Form, title string) *huh.Form {
	categories := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = huh.NewOption(string(c), string(c))
	}
	if f.Category == "" {
		f.Category = string(model.CategoryOther)
	}

	payments := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, p := range model.PaymentMethods {
		payments = append(payments, huh.NewOption(string(p), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Title").
				Placeholder("e.g. Dinner at Olive").
				Value(&f.Title).
				Validate(fieldValidator(editor.FieldTitle, func(f *editor.Form, s string) { f.Title = s })),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(fieldValidator(editor.FieldAmount, func(f *editor.Form, s string) { f.Amount = s })),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Height(8).
				Value(&f.Category),
			huh.NewInput().
				Title("Date").
				Description(model.DateLayout).
				Value(&f.Date).
				Validate(fieldValidator(editor.FieldDate, func(f *editor.Form, s string) { f.Date = s })),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				CharLimit(500).
				Lines(3).
				Value(&f.Description),
			huh.NewSelect[string]().
				Title("Payment method").
				Options(payments...).
				Value(&f.PaymentMethod),
			huh.NewInput().
				Title("Tags").
				Description("comma separated").
				Value(&f.Tags),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

// fieldValidator runs the editor on a form holding only the input under test
// and reports the errors raised for that field.
func fieldValidator(field string, set func(*editor.Form, string)) func(string) error {
	return func(s string) error {
		var scratch editor.Form
		set(&scratch, s)
		for _, fe := range editor.FieldErrors(scratch.Validate()) {
			if fe.Field == field {
				return fe.Err
			}
		}
		return nil
	}
}

// newNameForm asks for a folder name.
func newNameForm(title string, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("e.g. Goa trip").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeBase16())
}

// newConfirmForm asks the user to confirm a delete.
func newConfirmForm(title, description string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(ok),
		),
	).WithTheme(huh.ThemeBase16())
}

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	Theme          string
	CurrencySymbol string
	ShareBaseURL   string
	ExportFilename string
	ConfirmDeletes bool
}

// SetupValuesFrom pre-fills the wizard from cfg.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Theme:          cfg.Appearance.Theme,
		CurrencySymbol: cfg.Appearance.CurrencySymbol,
		ShareBaseURL:   cfg.Share.BaseURL,
		ExportFilename: cfg.Export.Filename,
		ConfirmDeletes: cfg.General.ConfirmDeletes,
	}
}

// ApplyTo copies the answers into cfg.
func (v *SetupValues) ApplyTo(cfg *config.Config) {
	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.CurrencySymbol = strings.TrimSpace(v.CurrencySymbol)
	cfg.Share.BaseURL = strings.TrimSpace(v.ShareBaseURL)
	cfg.Export.Filename = strings.TrimSpace(v.ExportFilename)
	cfg.General.ConfirmDeletes = v.ConfirmDeletes
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}
	if !theme.Known(v.Theme) {
		v.Theme = theme.FlexokiDark.Name
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount.").
				Value(&v.CurrencySymbol),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Share link base URL").
				Description("Links point here with the expenses in the ?shared= parameter.").
				Value(&v.ShareBaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Export file name").
				Value(&v.ExportFilename).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("file name is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Confirm before deleting?").
				Description("Applies to the dashboard. CLI deletes always ask unless --yes is given.").
				Affirmative("Yes").
				Negative("No").
				Value(&v.ConfirmDeletes),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", s)
	}
	return nil
}
