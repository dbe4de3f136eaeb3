// Package model defines the domain types for spendfold folders and expenses.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers in the persisted state and share links.
	decimal.MarshalJSONWithoutQuotes = true
}

// Expense is a single recorded transaction. FolderID always equals the id of
// the folder that owns it.
type Expense struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Category      Category        `json:"category"`
	Date          Date            `json:"date"`
	FolderID      int64           `json:"folderId"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// Clone returns a copy of e that shares no slices with it.
func (e Expense) Clone() Expense {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

// Folder is a named, ordered group of expenses.
type Folder struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Expenses []Expense `json:"expenses"`
}

// Clone returns a deep copy of f.
func (f Folder) Clone() Folder {
	out := Folder{ID: f.ID, Name: f.Name, Expenses: make([]Expense, len(f.Expenses))}
	for i, e := range f.Expenses {
		out.Expenses[i] = e.Clone()
	}
	return out
}

// Total sums the amounts of every expense in the folder.
func (f Folder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range f.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CloneFolders deep-copies a folder collection. A nil input yields an empty,
// non-nil slice so the result always serializes as a JSON array.
func CloneFolders(folders []Folder) []Folder {
	out := make([]Folder, len(folders))
	for i, f := range folders {
		out[i] = f.Clone()
	}
	return out
}

// FlatExpense is an expense annotated with the name of its folder. It is the
// row type of the flattened view, export sheets, and share payloads.
type FlatExpense struct {
	Expense
	FolderName string `json:"folderName"`
}
