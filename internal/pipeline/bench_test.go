package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

// benchFolders builds a ledger of folders*perFolder expenses spread over the
// last 90 days before now.
func benchFolders(folders, perFolder int, now time.Time) []model.Folder {
	out := make([]model.Folder, folders)
	id := int64(1)
	for i := range out {
		f := model.Folder{ID: id, Name: fmt.Sprintf("Folder %d", i)}
		id++
		f.Expenses = make([]model.Expense, perFolder)
		for j := range f.Expenses {
			f.Expenses[j] = model.Expense{
				ID:       id,
				Title:    fmt.Sprintf("Expense %d", j),
				Amount:   decimal.New(int64(100+j), -2),
				Category: model.Categories[j%len(model.Categories)],
				Date:     model.DateOf(now.AddDate(0, 0, -(j % 90))),
				FolderID: f.ID,
			}
			id++
		}
		out[i] = f
	}
	return out
}

func BenchmarkCompute(b *testing.B) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	folders := benchFolders(20, 500, now)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compute(folders, now)
	}
}

func BenchmarkFlatten(b *testing.B) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	folders := benchFolders(20, 500, now)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Flatten(folders)
	}
}

func BenchmarkMonthlyCategoryTotals(b *testing.B) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	flat := Flatten(benchFolders(20, 500, now))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MonthlyCategoryTotals(flat, now)
	}
}

func BenchmarkDailyTotals(b *testing.B) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	flat := Flatten(benchFolders(20, 500, now))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DailyTotals(flat, now)
	}
}
