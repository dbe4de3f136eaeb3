package model

import "github.com/shopspring/decimal"

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
}

// DailyTotal is the summed amount of one calendar day.
type DailyTotal struct {
	Date     Date
	Total    decimal.Decimal
	Expenses int
}

// Summary holds the top-level aggregate across all folders.
type Summary struct {
	Total         decimal.Decimal
	MonthTotal    decimal.Decimal
	CategoryCount int
	FolderCount   int
	ExpenseCount  int
	FolderNames   []string
}
