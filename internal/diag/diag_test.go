package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" INFO ": zerolog.InfoLevel,
		"":       zerolog.WarnLevel,
		"loud":   zerolog.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = closeFn() }()

	logger.Info().Msg("hidden")
	logger.Warn().Str("link", "bad").Msg("ignoring shared link")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked at warn level: %s", out)
	}
	if !strings.Contains(out, `"link":"bad"`) {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spendfold.log")
	logger, closeFn, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug().Msg("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Errorf("log file = %q", b)
	}
}
