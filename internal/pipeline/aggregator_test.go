package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

var now = time.Date(2026, time.October, 18, 15, 30, 0, 0, time.Local)

func exp(id, folder int64, title string, amount string, cat model.Category, date model.Date) model.Expense {
	return model.Expense{
		ID:       id,
		FolderID: folder,
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Category: cat,
		Date:     date,
	}
}

func fixture() []model.Folder {
	thisMonth := model.NewDate(2026, time.October, 1)
	lastMonth := model.NewDate(2026, time.September, 30)
	return []model.Folder{
		{ID: 1, Name: "Home", Expenses: []model.Expense{
			exp(11, 1, "Rent", "500", model.CategoryRent, thisMonth),
			exp(12, 1, "Veg", "12.50", model.CategoryGrocery, model.NewDate(2026, time.October, 18)),
			exp(13, 1, "Old rent", "480", model.CategoryRent, lastMonth),
		}},
		{ID: 2, Name: "Trips", Expenses: []model.Expense{
			exp(21, 2, "Train", "30", model.CategoryTravel, model.NewDate(2026, time.October, 31)),
			exp(22, 2, "Snacks", "4.25", model.CategoryOutsideFood, model.NewDate(2026, time.November, 1)),
			exp(23, 2, "Hotel", "120", model.CategoryTravel, thisMonth),
		}},
	}
}

func TestFlattenOrderAndFolderName(t *testing.T) {
	flat := Flatten(fixture())
	if len(flat) != 6 {
		t.Fatalf("len(flat) = %d, want 6", len(flat))
	}
	wantIDs := []int64{11, 12, 13, 21, 22, 23}
	for i, id := range wantIDs {
		if flat[i].ID != id {
			t.Errorf("flat[%d].ID = %d, want %d", i, flat[i].ID, id)
		}
	}
	if flat[0].FolderName != "Home" || flat[3].FolderName != "Trips" {
		t.Errorf("folder names = %q, %q", flat[0].FolderName, flat[3].FolderName)
	}
}

func TestRecentKeepsInsertionOrder(t *testing.T) {
	flat := Flatten(fixture())
	recent := Recent(flat, RecentLimit)
	if len(recent) != 5 {
		t.Fatalf("len(recent) = %d, want 5", len(recent))
	}
	if recent[0].ID != 11 || recent[4].ID != 22 {
		t.Errorf("recent = %d..%d, want 11..22", recent[0].ID, recent[4].ID)
	}

	if got := Recent(flat[:2], RecentLimit); len(got) != 2 {
		t.Errorf("Recent of 2 = %d items", len(got))
	}
	if got := Recent(nil, RecentLimit); len(got) != 0 {
		t.Errorf("Recent(nil) = %d items", len(got))
	}
}

func TestMonthlyCategoryTotals(t *testing.T) {
	totals := MonthlyCategoryTotals(Flatten(fixture()), now)
	if len(totals) != len(model.Categories) {
		t.Fatalf("len(totals) = %d, want %d", len(totals), len(model.Categories))
	}
	for i, ct := range totals {
		if ct.Category != model.Categories[i] {
			t.Fatalf("totals[%d] = %q, want %q", i, ct.Category, model.Categories[i])
		}
	}

	want := map[model.Category]string{
		model.CategoryRent:    "500",
		model.CategoryGrocery: "12.5",
		model.CategoryTravel:  "150",
	}
	for _, ct := range totals {
		w, ok := want[ct.Category]
		if !ok {
			w = "0"
		}
		if !ct.Total.Equal(decimal.RequireFromString(w)) {
			t.Errorf("%s = %s, want %s", ct.Category, ct.Total, w)
		}
	}
}

func TestMonthlyTotalsSumMatchesMonthFilter(t *testing.T) {
	flat := Flatten(fixture())

	sum := decimal.Zero
	for _, ct := range MonthlyCategoryTotals(flat, now) {
		sum = sum.Add(ct.Total)
	}
	month := decimal.Zero
	for _, e := range FilterByMonth(flat, now) {
		month = month.Add(e.Amount)
	}
	if !sum.Equal(month) {
		t.Errorf("category sum %s != month total %s", sum, month)
	}
	if s := Summarize(fixture(), now); !s.MonthTotal.Equal(month) {
		t.Errorf("Summary.MonthTotal = %s, want %s", s.MonthTotal, month)
	}
}

func TestSingleRentExample(t *testing.T) {
	first, _ := model.MonthBounds(now)
	folders := []model.Folder{{ID: 1, Name: "Home", Expenses: []model.Expense{
		exp(2, 1, "Rent", "500", model.CategoryRent, first),
	}}}
	for _, ct := range MonthlyCategoryTotals(Flatten(folders), now) {
		want := decimal.Zero
		if ct.Category == model.CategoryRent {
			want = decimal.NewFromInt(500)
		}
		if !ct.Total.Equal(want) {
			t.Errorf("%s = %s, want %s", ct.Category, ct.Total.StringFixed(2), want.StringFixed(2))
		}
	}
}

func TestSummarize(t *testing.T) {
	folders := []model.Folder{
		{ID: 1, Name: "A", Expenses: []model.Expense{exp(3, 1, "x", "10", model.CategoryRent, model.NewDate(2026, time.October, 2))}},
		{ID: 2, Name: "B", Expenses: []model.Expense{exp(4, 2, "y", "20", model.CategoryGifts, model.NewDate(2025, time.January, 2))}},
	}
	s := Summarize(folders, now)
	if s.Total.StringFixed(2) != "30.00" {
		t.Errorf("Total = %s, want 30.00", s.Total.StringFixed(2))
	}
	if s.CategoryCount != 2 {
		t.Errorf("CategoryCount = %d, want 2", s.CategoryCount)
	}
	if s.FolderCount != 2 || s.ExpenseCount != 2 {
		t.Errorf("FolderCount = %d ExpenseCount = %d", s.FolderCount, s.ExpenseCount)
	}
	if len(s.FolderNames) != 2 || s.FolderNames[0] != "A" || s.FolderNames[1] != "B" {
		t.Errorf("FolderNames = %v", s.FolderNames)
	}
	if s.MonthTotal.StringFixed(2) != "10.00" {
		t.Errorf("MonthTotal = %s", s.MonthTotal.StringFixed(2))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, now)
	if !s.Total.IsZero() || s.CategoryCount != 0 || s.FolderCount != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.FolderNames == nil {
		t.Error("FolderNames should be non-nil")
	}
}

func TestFilters(t *testing.T) {
	flat := Flatten(fixture())
	if got := FilterByFolder(flat, "trip"); len(got) != 3 {
		t.Errorf("FilterByFolder(trip) = %d, want 3", len(got))
	}
	if got := FilterByCategory(flat, "TRAVEL"); len(got) != 2 {
		t.Errorf("FilterByCategory(TRAVEL) = %d, want 2", len(got))
	}
	if got := FilterByFolder(flat, ""); len(got) != len(flat) {
		t.Errorf("empty folder filter dropped rows")
	}
}

func TestDailyTotals(t *testing.T) {
	days := DailyTotals(Flatten(fixture()), now)
	if len(days) != 18 {
		t.Fatalf("len(days) = %d, want 18", len(days))
	}
	if days[0].Date.String() != "2026-10-18" {
		t.Errorf("first day = %s, want most recent", days[0].Date)
	}
	if !days[0].Total.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Oct 18 total = %s", days[0].Total)
	}
	last := days[len(days)-1]
	if last.Date.String() != "2026-10-01" || last.Expenses != 2 {
		t.Errorf("Oct 1 = %s with %d expenses", last.Date, last.Expenses)
	}
}

func TestTopCategories(t *testing.T) {
	top := TopCategories(MonthlyCategoryTotals(Flatten(fixture()), now))
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Category != model.CategoryRent || top[1].Category != model.CategoryTravel {
		t.Errorf("top order = %v", top)
	}
}

func TestComputeBundlesViews(t *testing.T) {
	v := Compute(fixture(), now)
	if len(v.Flat) != 6 || len(v.Recent) != 5 || len(v.Monthly) != 18 {
		t.Errorf("views sizes flat=%d recent=%d monthly=%d", len(v.Flat), len(v.Recent), len(v.Monthly))
	}
	if !v.ComputedAt.Equal(now) {
		t.Errorf("ComputedAt = %v", v.ComputedAt)
	}
}
