package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
)

type memPersister struct {
	saved [][]model.Folder
	err   error
}

func (p *memPersister) SaveFolders(folders []model.Folder) error {
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, model.CloneFolders(folders))
	return nil
}

type seqIDs struct{ n int64 }

func (s *seqIDs) NextID() int64 {
	s.n++
	return s.n
}

type LedgerSuite struct {
	suite.Suite
	persist *memPersister
	store   *Store
}

func (s *LedgerSuite) SetupTest() {
	s.persist = &memPersister{}
	s.store = New(nil, s.persist, &seqIDs{n: 100})
}

func (s *LedgerSuite) expense(title string, amount int64, cat model.Category) model.Expense {
	return model.Expense{
		Title:    title,
		Amount:   decimal.NewFromInt(amount),
		Category: cat,
		Date:     model.NewDate(2026, time.October, 1),
	}
}

func (s *LedgerSuite) TestAddFolder() {
	f, err := s.store.AddFolder("  Home  ")
	s.Require().NoError(err)
	s.Equal("Home", f.Name)
	s.Equal(int64(101), f.ID)
	s.NotNil(f.Expenses)
	s.Len(s.persist.saved, 1)
}

func (s *LedgerSuite) TestAddFolderBlankIgnored() {
	_, err := s.store.AddFolder("   ")
	s.ErrorIs(err, ErrBlankName)
	s.Zero(s.store.Len())
	s.Empty(s.persist.saved)
}

func (s *LedgerSuite) TestRenameFolder() {
	f, _ := s.store.AddFolder("Home")
	s.Require().NoError(s.store.RenameFolder(f.ID, "House"))

	got, err := s.store.Folder(f.ID)
	s.Require().NoError(err)
	s.Equal("House", got.Name)

	s.ErrorIs(s.store.RenameFolder(f.ID, ""), ErrBlankName)
	s.ErrorIs(s.store.RenameFolder(999, "x"), ErrFolderNotFound)
}

func (s *LedgerSuite) TestAddExpenseSetsFolderID() {
	f, _ := s.store.AddFolder("Home")
	e, err := s.store.AddExpense(f.ID, s.expense("Rent", 500, model.CategoryRent))
	s.Require().NoError(err)
	s.Equal(f.ID, e.FolderID)
	s.NotZero(e.ID)

	found, err := s.store.FindExpense(e.ID)
	s.Require().NoError(err)
	s.Equal("Rent", found.Title)

	_, err = s.store.AddExpense(999, s.expense("x", 1, model.CategoryOther))
	s.ErrorIs(err, ErrFolderNotFound)
}

func (s *LedgerSuite) TestUpdateExpensePreservesIdentity() {
	f, _ := s.store.AddFolder("Home")
	e, _ := s.store.AddExpense(f.ID, s.expense("Rent", 500, model.CategoryRent))

	edited := s.expense("Groceries", 42, model.CategoryGrocery)
	edited.ID = e.ID
	edited.FolderID = 12345
	edited.Description = "weekly"

	got, err := s.store.UpdateExpense(f.ID, edited)
	s.Require().NoError(err)
	s.Equal(e.ID, got.ID)
	s.Equal(f.ID, got.FolderID)
	s.Equal("Groceries", got.Title)
	s.Equal(model.CategoryGrocery, got.Category)
	s.Equal("weekly", got.Description)

	missing := s.expense("x", 1, model.CategoryOther)
	missing.ID = 424242
	_, err = s.store.UpdateExpense(f.ID, missing)
	s.ErrorIs(err, ErrExpenseNotFound)
}

func (s *LedgerSuite) TestDeleteExpense() {
	f, _ := s.store.AddFolder("Home")
	a, _ := s.store.AddExpense(f.ID, s.expense("A", 1, model.CategoryOther))
	b, _ := s.store.AddExpense(f.ID, s.expense("B", 2, model.CategoryOther))

	s.Require().NoError(s.store.DeleteExpense(f.ID, a.ID))
	got, _ := s.store.Folder(f.ID)
	s.Require().Len(got.Expenses, 1)
	s.Equal(b.ID, got.Expenses[0].ID)

	s.ErrorIs(s.store.DeleteExpense(f.ID, a.ID), ErrExpenseNotFound)
}

func (s *LedgerSuite) TestDeleteFolderRemovesExpensesFromViews() {
	home, _ := s.store.AddFolder("Home")
	trips, _ := s.store.AddFolder("Trips")
	_, _ = s.store.AddExpense(home.ID, s.expense("Rent", 500, model.CategoryRent))
	_, _ = s.store.AddExpense(trips.ID, s.expense("Train", 30, model.CategoryTravel))

	s.Require().NoError(s.store.DeleteFolder(home.ID))

	flat := pipeline.Flatten(s.store.Folders())
	s.Require().Len(flat, 1)
	s.Equal("Train", flat[0].Title)

	sum := pipeline.Summarize(s.store.Folders(), time.Now())
	s.Equal(1, sum.FolderCount)
	s.Equal([]string{"Trips"}, sum.FolderNames)
	s.True(sum.Total.Equal(decimal.NewFromInt(30)))

	s.ErrorIs(s.store.DeleteFolder(home.ID), ErrFolderNotFound)
}

func (s *LedgerSuite) TestPersistFailureKeepsState() {
	f, _ := s.store.AddFolder("Home")
	boom := errors.New("disk full")
	s.persist.err = boom

	_, err := s.store.AddExpense(f.ID, s.expense("Rent", 500, model.CategoryRent))
	s.ErrorIs(err, boom)

	got, _ := s.store.Folder(f.ID)
	s.Empty(got.Expenses)
}

func (s *LedgerSuite) TestFoldersReturnsCopy() {
	f, _ := s.store.AddFolder("Home")
	snap := s.store.Folders()
	snap[0].Name = "mutated"

	got, _ := s.store.Folder(f.ID)
	s.Equal("Home", got.Name)
}

func (s *LedgerSuite) TestObserversNotified() {
	var calls int
	var last []model.Folder
	unsub := s.store.Subscribe(func(folders []model.Folder) {
		calls++
		last = folders
	})

	_, _ = s.store.AddFolder("Home")
	s.Equal(1, calls)
	s.Len(last, 1)

	_, _ = s.store.AddFolder("   ")
	s.Equal(1, calls, "rejected mutation must not notify")

	unsub()
	_, _ = s.store.AddFolder("Trips")
	s.Equal(1, calls)
}

func (s *LedgerSuite) TestReplaceValidates() {
	good := []model.Folder{{ID: 5, Name: "Shared", Expenses: []model.Expense{{
		ID: 6, FolderID: 5, Title: "Tea", Amount: decimal.NewFromInt(2), Category: model.CategoryOutsideFood,
	}}}}
	s.Require().NoError(s.store.Replace(good))
	s.Equal(1, s.store.Len())

	bad := []model.Folder{{ID: 5, Name: "Shared", Expenses: []model.Expense{{ID: 6, FolderID: 9, Category: model.CategoryOther}}}}
	s.ErrorIs(s.store.Replace(bad), model.ErrInvalidState)

	got, err := s.store.FolderByName("shared")
	s.Require().NoError(err)
	s.Len(got.Expenses, 1)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func TestNewSeedsTimestampIDs(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).UnixMilli()
	st := New([]model.Folder{{ID: future, Name: "Later", Expenses: []model.Expense{}}}, nil, nil)

	f, err := st.AddFolder("Now")
	require.NoError(t, err)
	assert.Greater(t, f.ID, future)
}
