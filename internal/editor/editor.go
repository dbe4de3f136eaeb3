// Package editor turns raw user input into validated expenses.
package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

// Field names as reported in FieldError.
const (
	FieldTitle         = "title"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldDate          = "date"
	FieldPaymentMethod = "paymentMethod"
)

var (
	// ErrRequired marks a required field left empty.
	ErrRequired = errors.New("required")
	// ErrNegativeAmount marks an amount below zero.
	ErrNegativeAmount = errors.New("must not be negative")
	// ErrGroupedAmount marks an amount written with thousands separators,
	// e.g. "1,000", which would otherwise read as a decimal.
	ErrGroupedAmount = errors.New("thousands separators are not supported")
)

var groupedAmount = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d*)?$`)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Form holds the raw, unvalidated fields of an expense as a user typed them.
// Tags is a comma separated list.
type Form struct {
	Title         string
	Amount        string
	Category      string
	Date          string
	Description   string
	PaymentMethod string
	Tags          string
}

// Blank returns an empty form with the date set to today.
func Blank(today model.Date) Form {
	return Form{Date: today.String()}
}

// FromExpense pre-fills a form for editing e.
func FromExpense(e model.Expense) Form {
	return Form{
		Title:         e.Title,
		Amount:        e.Amount.String(),
		Category:      string(e.Category),
		Date:          e.Date.String(),
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
		Tags:          strings.Join(e.Tags, ", "),
	}
}

// Validate reports every invalid field. The returned error joins one
// *FieldError per failing field, or is nil.
func (f Form) Validate() error {
	_, err := f.parse()
	return err
}

// New builds a fresh expense in folderID with an id from ids.
func (f Form) New(folderID int64, ids model.IDSource) (model.Expense, error) {
	e, err := f.parse()
	if err != nil {
		return model.Expense{}, err
	}
	e.ID = ids.NextID()
	e.FolderID = folderID
	return e, nil
}

// Apply replaces every field of existing with the form's values, keeping its
// id and folderId.
func (f Form) Apply(existing model.Expense) (model.Expense, error) {
	e, err := f.parse()
	if err != nil {
		return model.Expense{}, err
	}
	e.ID = existing.ID
	e.FolderID = existing.FolderID
	return e, nil
}

func (f Form) parse() (model.Expense, error) {
	var (
		e    model.Expense
		errs []error
	)

	e.Title = strings.TrimSpace(f.Title)
	if e.Title == "" {
		errs = append(errs, &FieldError{Field: FieldTitle, Err: ErrRequired})
	}

	if amount, err := ParseAmount(f.Amount); err != nil {
		errs = append(errs, &FieldError{Field: FieldAmount, Err: err})
	} else {
		e.Amount = amount
	}

	if strings.TrimSpace(f.Category) == "" {
		errs = append(errs, &FieldError{Field: FieldCategory, Err: ErrRequired})
	} else if c, err := model.ParseCategory(f.Category); err != nil {
		errs = append(errs, &FieldError{Field: FieldCategory, Err: err})
	} else {
		e.Category = c
	}

	if strings.TrimSpace(f.Date) == "" {
		errs = append(errs, &FieldError{Field: FieldDate, Err: ErrRequired})
	} else if d, err := model.ParseDate(f.Date); err != nil {
		errs = append(errs, &FieldError{Field: FieldDate, Err: err})
	} else {
		e.Date = d
	}

	if strings.TrimSpace(f.PaymentMethod) != "" {
		if p, err := model.ParsePaymentMethod(f.PaymentMethod); err != nil {
			errs = append(errs, &FieldError{Field: FieldPaymentMethod, Err: err})
		} else {
			e.PaymentMethod = p
		}
	}

	e.Description = strings.TrimSpace(f.Description)
	e.Tags = ParseTags(f.Tags)

	if len(errs) > 0 {
		return model.Expense{}, errors.Join(errs...)
	}
	return e, nil
}

// ParseAmount reads a non-negative decimal amount. Either "." or "," is
// accepted as the decimal separator. A comma followed by exactly three digits
// is taken as thousands grouping and rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrRequired
	}
	if groupedAmount.MatchString(s) {
		return decimal.Decimal{}, ErrGroupedAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number: %q", s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, ErrNegativeAmount
	}
	return d, nil
}

// ParseTags splits a comma separated list, dropping blanks and duplicates.
func ParseTags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// FieldErrors unpacks the per-field failures from an error returned by
// Validate, New, or Apply.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}
