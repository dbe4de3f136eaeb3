package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/daemon"
	"github.com/theirongolddev/spendfold/internal/store"
)

type serveRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	StatePath string    `json:"state_path"`
}

var (
	flagServeAddr         string
	flagServeInterval     time.Duration
	flagServeDetach       bool
	flagServePIDFile      string
	flagServeLogFile      string
	flagServeEventsBuffer int
	flagServeChild        bool
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Aliases:     []string{"daemon"},
	Short:       "Run the local HTTP/SSE service for status, share links, and exports",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLogToFile: "true"},
	RunE:        runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service process and API status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running service",
	RunE:  runServeStop,
}

func init() {
	defaultPID := filepath.Join(config.CacheDir(), "spendfoldd.pid")
	defaultLog := filepath.Join(config.CacheDir(), "spendfoldd.log")

	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().DurationVar(&flagServeInterval, "interval", 0, "Polling interval (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", defaultPID, "PID file path")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", defaultLog, "Log file path for detached mode")
	serveCmd.PersistentFlags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the service as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd)
	serveCmd.AddCommand(serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return appCfg.Server.Addr
}

func serveInterval() time.Duration {
	if flagServeInterval > 0 {
		return flagServeInterval
	}
	return time.Duration(appCfg.Server.IntervalSec) * time.Second
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid service launch mode")
	}

	if flagServeDetach {
		return startServeDetached()
	}

	return runServeForeground()
}

func startServeDetached() error {
	if err := ensureServeNotRunning(flagServePIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create service directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagServeLogFile), 0o750); err != nil {
		return fmt.Errorf("create service log directory: %w", err)
	}

	//nolint:gosec // service log path is configured by the local user
	logf, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open service log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	child.Stdout = logf
	child.Stderr = logf
	child.Stdin = nil
	child.Env = os.Environ()

	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached service: %w", err)
	}

	fmt.Printf("  Started service (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagServePIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", serveAddr())
	fmt.Printf("  Log: %s\n", flagServeLogFile)
	return nil
}

func runServeForeground() error {
	if err := ensureServeNotRunning(flagServePIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create service directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagServePIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagServePIDFile) }()

	db, err := store.Open(statePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	addr := serveAddr()
	state := serveRuntimeState{
		PID:       pid,
		Addr:      addr,
		StartedAt: time.Now(),
		StatePath: db.Path(),
	}
	_ = writeState(runtimeStatePath(flagServePIDFile), state)
	defer func() { _ = os.Remove(runtimeStatePath(flagServePIDFile)) }()

	svc := daemon.New(daemon.Config{
		StatePath:      db.Path(),
		Interval:       serveInterval(),
		Addr:           addr,
		EventsBuffer:   flagServeEventsBuffer,
		ShareBaseURL:   config.ShareBaseURL(appCfg),
		ExportFilename: filepath.Base(config.ExportFilename(appCfg)),
		Logger:         logger,
	}, db)

	fmt.Printf("  spendfold service listening on http://%s\n", addr)
	fmt.Printf("  Polling every %s from %s\n", serveInterval(), db.Path())
	fmt.Printf("  Stop with: spendfold serve stop --pid-file %s\n", flagServePIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		fmt.Printf("  Service: not running (pid file not found)\n")
		return nil
	}

	if !processAlive(pid) {
		fmt.Printf("  Service: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := serveAddr()
	if st, err := readState(runtimeStatePath(flagServePIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Service PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status check
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	sym := appCfg.Appearance.CurrencySymbol
	if st.LastPollAt.IsZero() {
		fmt.Printf("  Last poll: pending\n")
	} else {
		fmt.Printf("  Last poll: %s\n", cli.FormatAgo(st.LastPollAt))
	}
	fmt.Printf("  Poll count: %d\n", st.PollCount)
	fmt.Printf("  Revision: %d\n", st.Summary.Revision)
	fmt.Printf("  Folders: %d\n", st.Summary.Folders)
	fmt.Printf("  Expenses: %d\n", st.Summary.Expenses)
	fmt.Printf("  Total: %s\n", cli.FormatMoney(sym, st.Summary.Total))
	fmt.Printf("  This month: %s\n", cli.FormatMoney(sym, st.Summary.MonthTotal))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		return errors.New("service is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find service process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal service process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagServePIDFile)
			_ = os.Remove(runtimeStatePath(flagServePIDFile))
			fmt.Printf("  Stopped service (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("service (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureServeNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("service already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(runtimeStatePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // service pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func runtimeStatePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st serveRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (serveRuntimeState, error) {
	var st serveRuntimeState
	//nolint:gosec // service state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
