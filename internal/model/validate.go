package model

import (
	"errors"
	"fmt"
)

// ErrInvalidState reports a folder collection that breaks an ownership or
// uniqueness rule.
var ErrInvalidState = errors.New("invalid folder state")

// ValidateFolders checks that folder ids are unique, that expense ids are
// unique, that every expense points at its owning folder, and that every
// category and amount is acceptable.
func ValidateFolders(folders []Folder) error {
	folderIDs := make(map[int64]bool, len(folders))
	expenseIDs := make(map[int64]bool)
	for _, f := range folders {
		if folderIDs[f.ID] {
			return fmt.Errorf("%w: duplicate folder id %d", ErrInvalidState, f.ID)
		}
		folderIDs[f.ID] = true
		for _, e := range f.Expenses {
			if expenseIDs[e.ID] {
				return fmt.Errorf("%w: duplicate expense id %d", ErrInvalidState, e.ID)
			}
			expenseIDs[e.ID] = true
			if e.FolderID != f.ID {
				return fmt.Errorf("%w: expense %d has folderId %d but lives in folder %d",
					ErrInvalidState, e.ID, e.FolderID, f.ID)
			}
			if !e.Category.Valid() {
				return fmt.Errorf("%w: expense %d has unknown category %q", ErrInvalidState, e.ID, e.Category)
			}
			if e.Amount.IsNegative() {
				return fmt.Errorf("%w: expense %d has negative amount", ErrInvalidState, e.ID)
			}
		}
	}
	return nil
}
