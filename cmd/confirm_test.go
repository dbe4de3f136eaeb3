package cmd

import (
	"errors"
	"os"
	"testing"
)

// withPipedStdin replaces stdin with a pipe so no terminal is attached.
func withPipedStdin(t *testing.T) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = orig
		_ = r.Close()
		_ = w.Close()
	})
}

func TestConfirmDeleteIgnoresConfigSetting(t *testing.T) {
	withPipedStdin(t)
	orig := appCfg
	t.Cleanup(func() { appCfg = orig })
	appCfg.General.ConfirmDeletes = false

	ok, err := confirmDelete("Delete folder?", "", false)
	if ok || !errors.Is(err, errNeedsConfirmation) {
		t.Fatalf("confirmDelete = %v, %v; want refusal without --yes", ok, err)
	}
}

func TestConfirmDeleteYesSkipsPrompt(t *testing.T) {
	withPipedStdin(t)

	ok, err := confirmDelete("Delete folder?", "", true)
	if err != nil || !ok {
		t.Fatalf("confirmDelete(--yes) = %v, %v; want true, nil", ok, err)
	}
}
