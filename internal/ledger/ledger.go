// Package ledger owns the in-memory folder collection. Every mutation builds
// a new collection, persists it, and only then makes it current, so memory
// never drifts from what was last written.
//
// A Store is not safe for concurrent use; one goroutine owns it.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendfold/internal/model"
)

var (
	// ErrBlankName is returned when a folder name is empty after trimming.
	ErrBlankName = errors.New("folder name is blank")
	// ErrFolderNotFound is returned when no folder has the requested id.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrExpenseNotFound is returned when no expense has the requested id.
	ErrExpenseNotFound = errors.New("expense not found")
)

// Persister saves a full snapshot of the collection.
type Persister interface {
	SaveFolders(folders []model.Folder) error
}

// Observer is called with a private copy of the collection after each
// successful mutation.
type Observer func(folders []model.Folder)

type subscription struct {
	id int
	fn Observer
}

// Store is the single source of truth for folders and their expenses.
type Store struct {
	folders   []model.Folder
	persist   Persister
	ids       model.IDSource
	observers []subscription
	nextSub   int
}

// New returns a Store seeded with folders. A nil persister keeps state in
// memory only.
func New(folders []model.Folder, persist Persister, ids model.IDSource) *Store {
	if ids == nil {
		ts := model.NewTimestampIDs()
		ts.Seed(folders)
		ids = ts
	}
	return &Store{
		folders: model.CloneFolders(folders),
		persist: persist,
		ids:     ids,
	}
}

// Folders returns a deep copy of the current collection.
func (s *Store) Folders() []model.Folder {
	return model.CloneFolders(s.folders)
}

// Len returns the number of folders.
func (s *Store) Len() int {
	return len(s.folders)
}

// Folder returns a copy of the folder with the given id.
func (s *Store) Folder(id int64) (model.Folder, error) {
	i := s.folderIndex(id)
	if i < 0 {
		return model.Folder{}, fmt.Errorf("%w: %d", ErrFolderNotFound, id)
	}
	return s.folders[i].Clone(), nil
}

// FolderByName returns the first folder whose name matches, ignoring case.
func (s *Store) FolderByName(name string) (model.Folder, error) {
	name = strings.TrimSpace(name)
	for _, f := range s.folders {
		if strings.EqualFold(f.Name, name) {
			return f.Clone(), nil
		}
	}
	return model.Folder{}, fmt.Errorf("%w: %q", ErrFolderNotFound, name)
}

// FindExpense locates an expense by id across all folders.
func (s *Store) FindExpense(id int64) (model.Expense, error) {
	for _, f := range s.folders {
		for _, e := range f.Expenses {
			if e.ID == id {
				return e.Clone(), nil
			}
		}
	}
	return model.Expense{}, fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
}

// Subscribe registers fn to run after every successful mutation. The
// returned func removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// AddFolder appends a new, empty folder.
func (s *Store) AddFolder(name string) (model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Folder{}, ErrBlankName
	}
	f := model.Folder{ID: s.ids.NextID(), Name: name, Expenses: []model.Expense{}}

	next := model.CloneFolders(s.folders)
	next = append(next, f)
	if err := s.commit(next); err != nil {
		return model.Folder{}, err
	}
	return f.Clone(), nil
}

// RenameFolder changes a folder's name.
func (s *Store) RenameFolder(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	i := s.folderIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrFolderNotFound, id)
	}

	next := model.CloneFolders(s.folders)
	next[i].Name = name
	return s.commit(next)
}

// DeleteFolder removes a folder together with all of its expenses.
func (s *Store) DeleteFolder(id int64) error {
	i := s.folderIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrFolderNotFound, id)
	}

	next := make([]model.Folder, 0, len(s.folders)-1)
	for j, f := range s.folders {
		if j != i {
			next = append(next, f.Clone())
		}
	}
	return s.commit(next)
}

// AddExpense appends e to the folder with the given id. A zero e.ID is
// replaced by a fresh id; e.FolderID is always set to folderID.
func (s *Store) AddExpense(folderID int64, e model.Expense) (model.Expense, error) {
	i := s.folderIndex(folderID)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: %d", ErrFolderNotFound, folderID)
	}
	e = e.Clone()
	if e.ID == 0 {
		e.ID = s.ids.NextID()
	}
	e.FolderID = folderID

	next := model.CloneFolders(s.folders)
	next[i].Expenses = append(next[i].Expenses, e)
	if err := model.ValidateFolders(next); err != nil {
		return model.Expense{}, fmt.Errorf("adding expense: %w", err)
	}
	if err := s.commit(next); err != nil {
		return model.Expense{}, err
	}
	return e.Clone(), nil
}

// UpdateExpense replaces the expense in folderID that has e.ID. The stored
// id and folderId are kept; every other field comes from e.
func (s *Store) UpdateExpense(folderID int64, e model.Expense) (model.Expense, error) {
	i := s.folderIndex(folderID)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: %d", ErrFolderNotFound, folderID)
	}
	j := expenseIndex(s.folders[i], e.ID)
	if j < 0 {
		return model.Expense{}, fmt.Errorf("%w: %d", ErrExpenseNotFound, e.ID)
	}
	e = e.Clone()
	e.FolderID = folderID

	next := model.CloneFolders(s.folders)
	next[i].Expenses[j] = e
	if err := model.ValidateFolders(next); err != nil {
		return model.Expense{}, fmt.Errorf("updating expense: %w", err)
	}
	if err := s.commit(next); err != nil {
		return model.Expense{}, err
	}
	return e.Clone(), nil
}

// DeleteExpense removes one expense from a folder.
func (s *Store) DeleteExpense(folderID, expenseID int64) error {
	i := s.folderIndex(folderID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrFolderNotFound, folderID)
	}
	j := expenseIndex(s.folders[i], expenseID)
	if j < 0 {
		return fmt.Errorf("%w: %d", ErrExpenseNotFound, expenseID)
	}

	next := model.CloneFolders(s.folders)
	next[i].Expenses = append(next[i].Expenses[:j], next[i].Expenses[j+1:]...)
	return s.commit(next)
}

// Replace swaps in an entirely new collection, as when importing a shared
// link. The collection must satisfy the ownership and uniqueness rules.
func (s *Store) Replace(folders []model.Folder) error {
	if err := model.ValidateFolders(folders); err != nil {
		return fmt.Errorf("replacing folders: %w", err)
	}
	next := model.CloneFolders(folders)
	for i := range next {
		if next[i].Expenses == nil {
			next[i].Expenses = []model.Expense{}
		}
	}
	if err := s.commit(next); err != nil {
		return err
	}
	if ts, ok := s.ids.(*model.TimestampIDs); ok {
		ts.Seed(next)
	}
	return nil
}

func (s *Store) commit(next []model.Folder) error {
	if s.persist != nil {
		if err := s.persist.SaveFolders(next); err != nil {
			return fmt.Errorf("persisting folders: %w", err)
		}
	}
	s.folders = next
	for _, sub := range s.observers {
		sub.fn(model.CloneFolders(next))
	}
	return nil
}

func (s *Store) folderIndex(id int64) int {
	for i, f := range s.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func expenseIndex(f model.Folder, id int64) int {
	for i, e := range f.Expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
