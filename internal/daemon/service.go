// Package daemon provides the long-running local service that watches the
// state file and serves status, events, share links, and exports over HTTP.
package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/spendfold/internal/export"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/pipeline"
	"github.com/theirongolddev/spendfold/internal/share"
	"github.com/theirongolddev/spendfold/internal/store"
)

// Source is the persisted state the service polls.
type Source interface {
	Revision(key string) (int64, error)
	LoadFolders() ([]model.Folder, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	StatePath      string
	Interval       time.Duration
	Addr           string
	EventsBuffer   int
	ShareBaseURL   string
	ExportFilename string
	Logger         zerolog.Logger
}

// Snapshot is a compact ledger state for status/event payloads.
type Snapshot struct {
	At         time.Time       `json:"at"`
	Revision   int64           `json:"revision"`
	Folders    int             `json:"folders"`
	Expenses   int             `json:"expenses"`
	Categories int             `json:"categories"`
	Total      decimal.Decimal `json:"total"`
	MonthTotal decimal.Decimal `json:"month_total"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Folders    int             `json:"folders"`
	Expenses   int             `json:"expenses"`
	Total      decimal.Decimal `json:"total"`
	MonthTotal decimal.Decimal `json:"month_total"`
}

// Event is emitted whenever the ledger snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	StatePath       string    `json:"state_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	src Source
	log zerolog.Logger
	now func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	folders     []model.Folder
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service polling src.
func New(cfg Config, src Source) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.ExportFilename == "" {
		cfg.ExportFilename = export.DefaultFilename
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       cfg.Logger.With().Str("component", "daemon").Logger(),
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/share", s.handleShare)
	mux.HandleFunc("/v1/export", s.handleExport)
	return s.withRequestID(mux)
}

// Run serves HTTP and polls until ctx is canceled or the server fails.
func (s *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Seed initial snapshot so status is useful immediately.
		s.pollOnce()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				s.pollOnce()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Service) pollOnce() {
	now := s.now()

	rev, err := s.src.Revision(store.FoldersKey)
	if err != nil {
		s.recordError(now, err)
		return
	}

	s.mu.RLock()
	unchanged := s.hasSnapshot && s.snapshot.Revision == rev
	s.mu.RUnlock()
	if unchanged {
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.lastError = ""
		s.mu.Unlock()
		return
	}

	folders, err := s.src.LoadFolders()
	if err != nil {
		s.recordError(now, err)
		return
	}
	snap := snapshotFromFolders(folders, rev, now)

	var ev Event

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.folders = folders
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
	} else {
		// A moved revision is a change even when the counts and totals are
		// equal, e.g. a rename or a recategorised expense.
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "ledger_delta",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     diffSnapshots(prev, snap),
		}
	}
	s.mu.Unlock()

	s.log.Debug().Int64("revision", rev).Str("type", ev.Type).Msg("ledger changed")
	s.publishEvent(ev)
}

func (s *Service) recordError(at time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = at
	s.pollCount++
	s.mu.Unlock()
	s.log.Error().Err(err).Msg("poll failed")
}

func snapshotFromFolders(folders []model.Folder, rev int64, at time.Time) Snapshot {
	sum := pipeline.Summarize(folders, at)
	return Snapshot{
		At:         at,
		Revision:   rev,
		Folders:    sum.FolderCount,
		Expenses:   sum.ExpenseCount,
		Categories: sum.CategoryCount,
		Total:      sum.Total,
		MonthTotal: sum.MonthTotal,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Folders:    curr.Folders - prev.Folders,
		Expenses:   curr.Expenses - prev.Expenses,
		Total:      curr.Total.Sub(prev.Total),
		MonthTotal: curr.MonthTotal.Sub(prev.MonthTotal),
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		StatePath:       s.cfg.StatePath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) currentFolders() []model.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneFolders(s.folders)
}

func (s *Service) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

// ShareResponse is served at /v1/share.
type ShareResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

func (s *Service) handleShare(w http.ResponseWriter, _ *http.Request) {
	link, err := share.Link(s.cfg.ShareBaseURL, share.NewPayload(s.currentFolders()))
	if err != nil {
		s.log.Error().Err(err).Msg("building share link")
		http.Error(w, "could not build share link", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ShareResponse{
		Link:    link,
		Message: "Share this link with your friend to collaborate on expenses",
	})
}

func (s *Service) handleExport(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := export.Write(&buf, pipeline.Flatten(s.currentFolders())); err != nil {
		s.log.Error().Err(err).Msg("building export")
		http.Error(w, "could not build export", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.ExportFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
