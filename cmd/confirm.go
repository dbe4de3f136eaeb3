package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errNeedsConfirmation = errors.New("refusing to delete without confirmation: pass --yes or run in a terminal")

// confirmDelete asks before a destructive change. Only --yes skips the
// prompt; confirm_deletes applies to the TUI. A non-interactive stdin refuses.
func confirmDelete(title, description string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNeedsConfirmation
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
