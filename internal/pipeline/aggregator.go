// Package pipeline derives the flattened list, recent expenses, monthly
// category totals, and summary figures from a folder collection.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

// RecentLimit is how many expenses the home view lists.
const RecentLimit = 5

// Flatten lists every expense, folder by folder in insertion order, tagged
// with its folder's name.
func Flatten(folders []model.Folder) []model.FlatExpense {
	n := 0
	for _, f := range folders {
		n += len(f.Expenses)
	}
	flat := make([]model.FlatExpense, 0, n)
	for _, f := range folders {
		for _, e := range f.Expenses {
			flat = append(flat, model.FlatExpense{Expense: e.Clone(), FolderName: f.Name})
		}
	}
	return flat
}

// Recent returns the first n flattened expenses. The order is insertion
// order, not date order.
func Recent(flat []model.FlatExpense, n int) []model.FlatExpense {
	if n < 0 {
		n = 0
	}
	if len(flat) < n {
		n = len(flat)
	}
	out := make([]model.FlatExpense, n)
	copy(out, flat[:n])
	return out
}

// FilterByMonth returns expenses dated within the calendar month containing now.
func FilterByMonth(flat []model.FlatExpense, now time.Time) []model.FlatExpense {
	first, last := model.MonthBounds(now)
	var result []model.FlatExpense
	for _, e := range flat {
		if e.Date.Within(first, last) {
			result = append(result, e)
		}
	}
	return result
}

// FilterByFolder returns expenses whose folder name contains the substring.
func FilterByFolder(flat []model.FlatExpense, folder string) []model.FlatExpense {
	if folder == "" {
		return flat
	}
	var result []model.FlatExpense
	for _, e := range flat {
		if containsIgnoreCase(e.FolderName, folder) {
			result = append(result, e)
		}
	}
	return result
}

// FilterByCategory returns expenses whose category contains the substring.
func FilterByCategory(flat []model.FlatExpense, category string) []model.FlatExpense {
	if category == "" {
		return flat
	}
	var result []model.FlatExpense
	for _, e := range flat {
		if containsIgnoreCase(string(e.Category), category) {
			result = append(result, e)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MonthlyCategoryTotals sums the current month's expenses per category. The
// result has one entry per category in display order, zeros included.
func MonthlyCategoryTotals(flat []model.FlatExpense, now time.Time) []model.CategoryTotal {
	totals := make(map[model.Category]decimal.Decimal, len(model.Categories))
	for _, e := range FilterByMonth(flat, now) {
		if !e.Category.Valid() {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	out := make([]model.CategoryTotal, len(model.Categories))
	for i, c := range model.Categories {
		t, ok := totals[c]
		if !ok {
			t = decimal.Zero
		}
		out[i] = model.CategoryTotal{Category: c, Total: t}
	}
	return out
}

// TopCategories returns the non-zero totals sorted by amount, largest first.
func TopCategories(totals []model.CategoryTotal) []model.CategoryTotal {
	var out []model.CategoryTotal
	for _, ct := range totals {
		if ct.Total.IsPositive() {
			out = append(out, ct)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// DailyTotals sums the current month's expenses per day, one entry for every
// day of the month up to and including now's day, most recent first.
func DailyTotals(flat []model.FlatExpense, now time.Time) []model.DailyTotal {
	first, _ := model.MonthBounds(now)
	today := model.DateOf(now)

	dayMap := make(map[string]*model.DailyTotal)
	for d := first; d.Compare(today) <= 0; d = (model.Date{Time: d.AddDate(0, 0, 1)}) {
		dayMap[d.String()] = &model.DailyTotal{Date: d, Total: decimal.Zero}
	}

	for _, e := range flat {
		dt, ok := dayMap[e.Date.String()]
		if !ok {
			continue
		}
		dt.Total = dt.Total.Add(e.Amount)
		dt.Expenses++
	}

	days := make([]model.DailyTotal, 0, len(dayMap))
	for _, dt := range dayMap {
		days = append(days, *dt)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date.Time)
	})
	return days
}

// Summarize computes the quick-summary figures across all folders.
func Summarize(folders []model.Folder, now time.Time) model.Summary {
	sum := model.Summary{
		Total:       decimal.Zero,
		MonthTotal:  decimal.Zero,
		FolderCount: len(folders),
		FolderNames: make([]string, 0, len(folders)),
	}
	first, last := model.MonthBounds(now)
	categories := make(map[model.Category]struct{})

	for _, f := range folders {
		sum.FolderNames = append(sum.FolderNames, f.Name)
		for _, e := range f.Expenses {
			sum.ExpenseCount++
			sum.Total = sum.Total.Add(e.Amount)
			categories[e.Category] = struct{}{}
			if e.Date.Within(first, last) {
				sum.MonthTotal = sum.MonthTotal.Add(e.Amount)
			}
		}
	}
	sum.CategoryCount = len(categories)
	return sum
}

// Views bundles everything the dashboards render.
type Views struct {
	Folders    []model.Folder
	Flat       []model.FlatExpense
	Recent     []model.FlatExpense
	Monthly    []model.CategoryTotal
	Daily      []model.DailyTotal
	Summary    model.Summary
	ComputedAt time.Time
}

// Compute derives every view from folders as of now.
func Compute(folders []model.Folder, now time.Time) Views {
	flat := Flatten(folders)
	return Views{
		Folders:    folders,
		Flat:       flat,
		Recent:     Recent(flat, RecentLimit),
		Monthly:    MonthlyCategoryTotals(flat, now),
		Daily:      DailyTotals(flat, now),
		Summary:    Summarize(folders, now),
		ComputedAt: now,
	}
}
