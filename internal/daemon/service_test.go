package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/spendfold/internal/export"
	"github.com/theirongolddev/spendfold/internal/model"
	"github.com/theirongolddev/spendfold/internal/share"
)

type fakeSource struct {
	rev     int64
	folders []model.Folder
	err     error
	loads   int
}

func (f *fakeSource) Revision(string) (int64, error) {
	return f.rev, f.err
}

func (f *fakeSource) LoadFolders() ([]model.Folder, error) {
	f.loads++
	return model.CloneFolders(f.folders), f.err
}

var pollNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.Local)

func homeFolder(amounts ...int64) model.Folder {
	f := model.Folder{ID: 1, Name: "Home", Expenses: []model.Expense{}}
	for i, a := range amounts {
		f.Expenses = append(f.Expenses, model.Expense{
			ID:       int64(10 + i),
			FolderID: 1,
			Title:    "item",
			Amount:   decimal.NewFromInt(a),
			Category: model.CategoryGrocery,
			Date:     model.NewDate(2026, time.October, 2),
		})
	}
	return f
}

func newTestService(src Source) *Service {
	s := New(Config{
		StatePath:    "state.db",
		Interval:     10 * time.Second,
		ShareBaseURL: "http://127.0.0.1:8787/",
		Logger:       zerolog.Nop(),
	}, src)
	s.now = func() time.Time { return pollNow }
	return s
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Folders:    2,
		Expenses:   10,
		Total:      decimal.RequireFromString("100.50"),
		MonthTotal: decimal.RequireFromString("20"),
	}
	curr := Snapshot{
		Folders:    3,
		Expenses:   12,
		Total:      decimal.RequireFromString("130.75"),
		MonthTotal: decimal.RequireFromString("50.25"),
	}

	delta := diffSnapshots(prev, curr)
	if delta.Folders != 1 {
		t.Fatalf("Folders delta = %d, want 1", delta.Folders)
	}
	if delta.Expenses != 2 {
		t.Fatalf("Expenses delta = %d, want 2", delta.Expenses)
	}
	if !delta.Total.Equal(decimal.RequireFromString("30.25")) {
		t.Fatalf("Total delta = %s, want 30.25", delta.Total)
	}
	if !delta.MonthTotal.Equal(decimal.RequireFromString("30.25")) {
		t.Fatalf("MonthTotal delta = %s, want 30.25", delta.MonthTotal)
	}
	if self := diffSnapshots(curr, curr); self.Folders != 0 || self.Expenses != 0 || !self.Total.IsZero() {
		t.Fatalf("self diff = %+v, want zero", self)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
		Logger:       zerolog.Nop(),
	}, &fakeSource{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnceTracksRevision(t *testing.T) {
	src := &fakeSource{rev: 1, folders: []model.Folder{homeFolder(10)}}
	s := newTestService(src)

	s.pollOnce()
	s.pollOnce()
	if src.loads != 1 {
		t.Fatalf("loads = %d, want 1 for unchanged revision", src.loads)
	}

	src.rev = 2
	src.folders = []model.Folder{homeFolder(10, 5)}
	s.pollOnce()

	st := s.snapshotStatus()
	if st.PollCount != 3 {
		t.Errorf("PollCount = %d, want 3", st.PollCount)
	}
	if st.Summary.Expenses != 2 || !st.Summary.Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("summary = %+v", st.Summary)
	}
	if st.EventCount != 2 {
		t.Fatalf("EventCount = %d, want 2", st.EventCount)
	}

	s.mu.RLock()
	last := s.events[len(s.events)-1]
	s.mu.RUnlock()
	if last.Type != "ledger_delta" || last.Delta.Expenses != 1 {
		t.Errorf("last event = %+v", last)
	}
}

func TestPollOncePublishesRenameWithSameTotals(t *testing.T) {
	src := &fakeSource{rev: 1, folders: []model.Folder{homeFolder(10)}}
	s := newTestService(src)
	s.pollOnce()

	renamed := homeFolder(10)
	renamed.Name = "Renamed"
	renamed.Expenses[0].Title = "groceries"
	src.rev = 2
	src.folders = []model.Folder{renamed}
	s.pollOnce()

	st := s.snapshotStatus()
	if st.EventCount != 2 {
		t.Fatalf("EventCount = %d, want 2 after a rename", st.EventCount)
	}
	if st.Summary.Revision != 2 {
		t.Errorf("Revision = %d, want 2", st.Summary.Revision)
	}

	s.mu.RLock()
	last := s.events[len(s.events)-1]
	s.mu.RUnlock()
	if last.Type != "ledger_delta" || last.Delta.Expenses != 0 || !last.Delta.Total.IsZero() {
		t.Errorf("last event = %+v, want a zero-delta ledger_delta", last)
	}
	if got := s.currentFolders()[0].Name; got != "Renamed" {
		t.Errorf("folder name = %q, want Renamed", got)
	}
}

func TestPollOnceRecordsError(t *testing.T) {
	src := &fakeSource{err: errors.New("locked")}
	s := newTestService(src)
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError != "locked" || st.PollCount != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestHandlers(t *testing.T) {
	src := &fakeSource{rev: 1, folders: []model.Folder{homeFolder(10, 20)}}
	s := newTestService(src)
	s.pollOnce()
	h := s.Handler()

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
			t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
	})

	t.Run("request id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") != "abc" {
			t.Errorf("X-Request-ID = %q", rec.Header().Get("X-Request-ID"))
		}
		var st Status
		if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if st.Summary.Folders != 1 || !st.Summary.Total.Equal(decimal.NewFromInt(30)) {
			t.Errorf("status summary = %+v", st.Summary)
		}
	})

	t.Run("share", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/share", nil))
		var resp ShareResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode share: %v", err)
		}
		u, err := url.Parse(resp.Link)
		if err != nil {
			t.Fatalf("parse link: %v", err)
		}
		p, err := share.Decode(u.Query().Get(share.Param))
		if err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if len(p.Folders) != 1 || len(p.Expenses) != 2 {
			t.Errorf("payload = %d folders %d expenses", len(p.Folders), len(p.Expenses))
		}
	})

	t.Run("export", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/export", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("export status = %d", rec.Code)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, export.DefaultFilename) {
			t.Errorf("Content-Disposition = %q", cd)
		}
		f, err := excelize.OpenReader(rec.Body)
		if err != nil {
			t.Fatalf("open xlsx: %v", err)
		}
		defer func() { _ = f.Close() }()
		rows, err := f.GetRows(export.SheetName)
		if err != nil {
			t.Fatalf("GetRows: %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("rows = %d, want header + 2", len(rows))
		}
	})
}
