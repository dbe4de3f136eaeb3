package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Rent", CategoryRent, true},
		{"  outside food ", CategoryOutsideFood, true},
		{"FAMILY AND FRIENDS", CategoryFamilyFriends, true},
		{"Groceries", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseCategory(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	if len(Categories) != 18 {
		t.Fatalf("len(Categories) = %d, want 18", len(Categories))
	}
	if Categories[0] != CategoryRent || Categories[17] != CategoryOther {
		t.Errorf("unexpected category order: first=%q last=%q", Categories[0], Categories[17])
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-09")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2026-03-09" {
		t.Errorf("String() = %q", d.String())
	}

	ts, err := ParseDate("2026-03-09T22:15:00Z")
	if err != nil {
		t.Fatalf("ParseDate timestamp: %v", err)
	}
	if ts.Compare(d) != 0 {
		t.Errorf("timestamp date = %s, want %s", ts, d)
	}

	if _, err := ParseDate("09/03/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, time.February, 17, 13, 0, 0, 0, time.Local))
	if first.String() != "2024-02-01" {
		t.Errorf("first = %s", first)
	}
	if last.String() != "2024-02-29" {
		t.Errorf("last = %s", last)
	}
	if !NewDate(2024, time.February, 29).Within(first, last) {
		t.Error("leap day should be within February")
	}
	if NewDate(2024, time.March, 1).Within(first, last) {
		t.Error("March 1 should be outside February")
	}
}

func TestExpenseJSONShape(t *testing.T) {
	e := Expense{
		ID:       1700000000000,
		Title:    "Rent",
		Amount:   decimal.RequireFromString("500.5"),
		Category: CategoryRent,
		Date:     NewDate(2026, time.October, 1),
		FolderID: 1690000000000,
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"amount":500.5`, `"date":"2026-10-01"`, `"folderId":1690000000000`} {
		if !strings.Contains(got, want) {
			t.Errorf("json %s missing %s", got, want)
		}
	}
	for _, absent := range []string{"description", "paymentMethod", "tags"} {
		if strings.Contains(got, absent) {
			t.Errorf("json %s should omit %s", got, absent)
		}
	}
}

func TestFlatExpenseJSONIsFlat(t *testing.T) {
	fe := FlatExpense{
		Expense:    Expense{ID: 2, Title: "Bus", Amount: decimal.NewFromInt(3), Category: CategoryTransportation, FolderID: 1},
		FolderName: "Trips",
	}
	b, err := json.Marshal(fe)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m["folderName"] != "Trips" || m["title"] != "Bus" {
		t.Errorf("flat json = %s", b)
	}
}

func TestCloneFoldersIsDeep(t *testing.T) {
	orig := []Folder{{ID: 1, Name: "Home", Expenses: []Expense{{ID: 2, FolderID: 1, Tags: []string{"a"}}}}}
	cp := CloneFolders(orig)
	cp[0].Name = "Changed"
	cp[0].Expenses[0].Title = "x"
	cp[0].Expenses[0].Tags[0] = "b"
	if orig[0].Name != "Home" || orig[0].Expenses[0].Title != "" || orig[0].Expenses[0].Tags[0] != "a" {
		t.Errorf("clone shares memory with original: %+v", orig)
	}
	if CloneFolders(nil) == nil {
		t.Error("CloneFolders(nil) should be non-nil")
	}
}

func TestValidateFolders(t *testing.T) {
	good := []Folder{{ID: 1, Name: "A", Expenses: []Expense{{ID: 10, FolderID: 1, Category: CategoryRent}}}}
	if err := ValidateFolders(good); err != nil {
		t.Fatalf("ValidateFolders(good) = %v", err)
	}

	bad := map[string][]Folder{
		"orphan":       {{ID: 1, Expenses: []Expense{{ID: 10, FolderID: 2, Category: CategoryRent}}}},
		"dup folder":   {{ID: 1}, {ID: 1}},
		"dup expense":  {{ID: 1, Expenses: []Expense{{ID: 10, FolderID: 1, Category: CategoryRent}}}, {ID: 2, Expenses: []Expense{{ID: 10, FolderID: 2, Category: CategoryRent}}}},
		"bad category": {{ID: 1, Expenses: []Expense{{ID: 10, FolderID: 1, Category: "Snacks"}}}},
		"negative":     {{ID: 1, Expenses: []Expense{{ID: 10, FolderID: 1, Category: CategoryRent, Amount: decimal.NewFromInt(-1)}}}},
	}
	for name, folders := range bad {
		if err := ValidateFolders(folders); !errors.Is(err, ErrInvalidState) {
			t.Errorf("%s: err = %v, want ErrInvalidState", name, err)
		}
	}
}

func TestTimestampIDsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	ids := NewTimestampIDsAt(func() time.Time { return fixed })
	a, b := ids.NextID(), ids.NextID()
	if a != 1_700_000_000_000 || b != a+1 {
		t.Errorf("ids = %d, %d", a, b)
	}

	ids.Seed([]Folder{{ID: 1_800_000_000_000}})
	if c := ids.NextID(); c != 1_800_000_000_001 {
		t.Errorf("after seed id = %d", c)
	}
}
