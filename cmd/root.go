// Package cmd implements the spendfold CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/diag"
	"github.com/theirongolddev/spendfold/internal/ledger"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/share"
	"github.com/theirongolddev/spendfold/internal/store"
)

// annotationLogToFile marks commands that own the terminal, so diagnostics
// go to the log file instead of stderr.
const annotationLogToFile = "spendfold/log-to-file"

var (
	flagDB       string
	flagQuiet    bool
	flagShared   string
	flagLogLevel string
)

var (
	appCfg   = config.DefaultConfig()
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "spendfold",
	Short: "Personal expense tracker",
	Long: "Organize expenses into folders, see monthly totals by category, " +
		"export to a spreadsheet, and share a snapshot as a link.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = closeLog() },
	RunE:              runHome,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "State database path (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagShared, "shared", "", "Import a shared link (or bare payload) before running")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
}

func initRuntime(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appCfg = cfg

	level := config.LogLevel(cfg)
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	opts := diag.Options{Level: level, Console: true}
	if cmd.Annotations[annotationLogToFile] == "true" {
		opts.File = config.LogPath(cfg)
	}
	l, closer, err := diag.New(opts)
	if err != nil {
		return err
	}
	logger, closeLog = l, closer
	return nil
}

func statePath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.StatePath(appCfg)
}

// session is an open state file plus the ledger loaded from it.
type session struct {
	db     *store.DB
	ledger *ledger.Store
	ids    *model.TimestampIDs
}

func (s *session) Close() {
	_ = s.db.Close()
}

// openSession loads the persisted folders and applies --shared, if given.
func openSession() (*session, error) {
	db, err := store.Open(statePath())
	if err != nil {
		return nil, err
	}
	folders, err := db.LoadFolders()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ids := model.NewTimestampIDs()
	ids.Seed(folders)
	s := &session{db: db, ledger: ledger.New(folders, db, ids), ids: ids}

	if flagShared != "" {
		consumeShared(s.ledger, flagShared)
	}
	logger.Debug().Str("path", db.Path()).Int("folders", s.ledger.Len()).Msg("state loaded")
	return s, nil
}

// consumeShared replaces the ledger with a shared snapshot. Failures only
// reach the diagnostic log and leave the ledger untouched.
func consumeShared(st share.Replacer, raw string) bool {
	p, err := share.Consume(st, raw)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring shared link")
		return false
	}
	logger.Info().Int("folders", len(p.Folders)).Int("expenses", len(p.Expenses)).Msg("imported shared link")
	return true
}

// resolveFolder finds a folder by id or, failing that, by name.
func resolveFolder(st *ledger.Store, ref string) (model.Folder, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if f, err := st.Folder(id); err == nil {
			return f, nil
		}
	}
	return st.FolderByName(ref)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
