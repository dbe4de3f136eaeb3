package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

type fixedIDs struct{ id int64 }

func (f fixedIDs) NextID() int64 { return f.id }

func validForm() Form {
	return Form{
		Title:         "Rent",
		Amount:        "500",
		Category:      "rent",
		Date:          "2026-10-01",
		PaymentMethod: "upi",
		Tags:          "home, monthly, home, ",
	}
}

func TestNewBuildsExpense(t *testing.T) {
	e, err := validForm().New(7, fixedIDs{id: 99})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.ID != 99 || e.FolderID != 7 {
		t.Errorf("ids = %d/%d, want 99/7", e.ID, e.FolderID)
	}
	if e.Category != model.CategoryRent || e.PaymentMethod != model.PaymentUPI {
		t.Errorf("category/payment = %q/%q", e.Category, e.PaymentMethod)
	}
	if !e.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("amount = %s", e.Amount)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "home" || e.Tags[1] != "monthly" {
		t.Errorf("tags = %v", e.Tags)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	err := Form{}.Validate()
	if err == nil {
		t.Fatal("expected error for empty form")
	}
	if !errors.Is(err, ErrRequired) {
		t.Errorf("err = %v, want ErrRequired", err)
	}
	fields := map[string]bool{}
	for _, fe := range FieldErrors(err) {
		fields[fe.Field] = true
	}
	for _, want := range []string{FieldTitle, FieldAmount, FieldCategory, FieldDate} {
		if !fields[want] {
			t.Errorf("missing field error for %s (got %v)", want, fields)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := map[string]func(*Form){
		"negative amount":  func(f *Form) { f.Amount = "-3" },
		"garbage amount":   func(f *Form) { f.Amount = "abc" },
		"unknown category": func(f *Form) { f.Category = "Snacks" },
		"bad date":         func(f *Form) { f.Date = "01/10/2026" },
		"bad payment":      func(f *Form) { f.PaymentMethod = "Barter" },
	}
	for name, mutate := range tests {
		f := validForm()
		mutate(&f)
		if err := f.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		} else if len(FieldErrors(err)) != 1 {
			t.Errorf("%s: got %d field errors, want 1: %v", name, len(FieldErrors(err)), err)
		}
	}
}

func TestParseAmountSeparators(t *testing.T) {
	for in, want := range map[string]string{"12.50": "12.5", "12,50": "12.5", " 7 ": "7", "0": "0"} {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", in, err)
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseAmount("-1"); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("ParseAmount(-1) err = %v", err)
	}
}

func TestParseAmountRejectsThousandsGrouping(t *testing.T) {
	for _, in := range []string{"1,000", "12,345,678", "1,000.50"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrGroupedAmount) {
			t.Errorf("ParseAmount(%q) err = %v, want ErrGroupedAmount", in, err)
		}
	}
	// Two decimals after the comma stay a decimal separator.
	got, err := ParseAmount("1,50")
	if err != nil || !got.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("ParseAmount(1,50) = %s, %v", got, err)
	}
}

func TestApplyPreservesIdentity(t *testing.T) {
	existing := model.Expense{
		ID:       1,
		FolderID: 2,
		Title:    "Old",
		Amount:   decimal.NewFromInt(1),
		Category: model.CategoryOther,
		Date:     model.NewDate(2025, time.January, 1),
		Tags:     []string{"old"},
	}
	f := Form{Title: "New", Amount: "9.99", Category: "Gifts", Date: "2026-02-03"}
	got, err := f.Apply(existing)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.ID != 1 || got.FolderID != 2 {
		t.Errorf("identity changed: %d/%d", got.ID, got.FolderID)
	}
	if got.Title != "New" || got.Category != model.CategoryGifts || got.Date.String() != "2026-02-03" {
		t.Errorf("fields not replaced: %+v", got)
	}
	if got.Tags != nil {
		t.Errorf("tags = %v, want cleared", got.Tags)
	}
}

func TestFromExpenseRoundTrip(t *testing.T) {
	e := model.Expense{
		ID:            5,
		FolderID:      6,
		Title:         "Bus",
		Amount:        decimal.RequireFromString("2.75"),
		Category:      model.CategoryTransportation,
		Date:          model.NewDate(2026, time.October, 9),
		PaymentMethod: model.PaymentCash,
		Tags:          []string{"commute"},
	}
	got, err := FromExpense(e).Apply(e)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Title != e.Title || !got.Amount.Equal(e.Amount) || got.Date.Compare(e.Date) != 0 ||
		got.PaymentMethod != e.PaymentMethod || len(got.Tags) != 1 {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
}

func TestBlankDefaultsDate(t *testing.T) {
	today := model.NewDate(2026, time.October, 18)
	if f := Blank(today); f.Date != "2026-10-18" || f.Title != "" {
		t.Errorf("Blank = %+v", f)
	}
}
