package model

import (
	"sync"
	"time"
)

// IDSource hands out record ids.
type IDSource interface {
	NextID() int64
}

// TimestampIDs issues ids from the wall clock in milliseconds. Two calls in
// the same millisecond still get distinct ids: the later one is bumped past
// the last id issued.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimestampIDs returns an id source backed by time.Now.
func NewTimestampIDs() *TimestampIDs {
	return &TimestampIDs{now: time.Now}
}

// NewTimestampIDsAt returns an id source backed by the given clock.
func NewTimestampIDsAt(now func() time.Time) *TimestampIDs {
	return &TimestampIDs{now: now}
}

// NextID returns a strictly increasing millisecond timestamp.
func (s *TimestampIDs) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Seed makes sure later ids sort after every id already in folders.
func (s *TimestampIDs) Seed(folders []Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range folders {
		if f.ID > s.last {
			s.last = f.ID
		}
		for _, e := range f.Expenses {
			if e.ID > s.last {
				s.last = e.ID
			}
		}
	}
}
