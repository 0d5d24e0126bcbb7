// Package draft implements the in-memory editing session for one record: a
// mutable working copy, a baseline snapshot of the last persisted state, and
// dirty tracking by deep structural comparison between the two.
package draft

import (
	"context"
	"fmt"
	"sync"

	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// Session owns the working copy of a single record for the lifetime of an
// edit. All methods are safe for concurrent use; the session serializes
// access the way the original single-threaded event loop did.
type Session struct {
	mu       sync.Mutex
	svc      remote.Service
	table    string
	id       string
	current  record.Record
	baseline record.Record
	dirty    bool

	allowEmptyEntries bool
	onDirty           func(bool)
}

// Option configures a Session.
type Option func(*Session)

// AllowEmptyEntries permits removing the last entry of a sub-record list.
// The legacy flat profile form keeps a one-entry minimum; the generalized
// list form passes this option.
func AllowEmptyEntries() Option {
	return func(s *Session) { s.allowEmptyEntries = true }
}

// NewSession creates an empty session bound to a table of the remote service.
// Call Hydrate before editing.
func NewSession(svc remote.Service, table string, opts ...Option) *Session {
	s := &Session{svc: svc, table: table, current: record.Record{}, baseline: record.Record{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnDirtyChange registers a callback invoked outside the session lock on
// every dirty-flag transition. Used by the auto-save scheduler.
func (s *Session) OnDirtyChange(fn func(dirty bool)) {
	s.mu.Lock()
	s.onDirty = fn
	s.mu.Unlock()
}

// Hydrate replaces both the working copy and the baseline with a deep copy
// of rec and clears the dirty flag. Pass nil to start from empty defaults
// (a new record with no id yet).
func (s *Session) Hydrate(rec record.Record) {
	s.mu.Lock()
	if rec == nil {
		rec = record.Record{}
	}
	s.current = rec.Clone()
	s.baseline = rec.Clone()
	s.id = rec.ID()
	notify := s.setDirtyLocked(false)
	s.mu.Unlock()
	notify()
}

// ID returns the record id, or "" before the first successful insert.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Table returns the remote table this session persists to.
func (s *Session) Table() string {
	return s.table
}

// Dirty reports whether the working copy differs from the baseline.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Set mutates one field of the working copy and recomputes the dirty flag.
// Setting a field to its current value is a no-op for dirtiness.
func (s *Session) Set(field string, value any) {
	s.mu.Lock()
	s.current[field] = record.Canon(value)
	notify := s.recomputeDirtyLocked()
	s.mu.Unlock()
	notify()
}

// Field returns a deep copy of one field of the working copy.
func (s *Session) Field(field string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.Canon(s.current[field])
}

// Snapshot returns a deep copy of the working copy.
func (s *Session) Snapshot() record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Baseline returns a deep copy of the last persisted state.
func (s *Session) Baseline() record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline.Clone()
}

// Commit persists the working copy: insert when the record has no id yet,
// update otherwise. On success the committed snapshot becomes the new
// baseline and the inserted id is adopted. On failure nothing changes.
// Edits made while the request was in flight keep the session dirty.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.current.Clone()
	id := s.id
	s.mu.Unlock()

	var (
		stored record.Record
		err    error
	)
	if id == "" {
		stored, err = s.svc.Insert(ctx, s.table, snapshot)
	} else {
		stored, err = s.svc.Update(ctx, s.table, id, snapshot)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s record: %w", s.table, err)
	}

	s.mu.Lock()
	if s.id == "" {
		s.id = stored.ID()
		s.current.SetID(stored.ID())
	}
	snapshot.SetID(s.id)
	if created := stored.String("created_at"); created != "" {
		snapshot["created_at"] = created
		s.current["created_at"] = created
	}
	s.baseline = snapshot
	notify := s.recomputeDirtyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// setDirtyLocked updates the flag and returns the callback to run after
// unlocking. Returns a no-op when the flag did not change.
func (s *Session) setDirtyLocked(dirty bool) func() {
	if s.dirty == dirty {
		return func() {}
	}
	s.dirty = dirty
	fn := s.onDirty
	if fn == nil {
		return func() {}
	}
	return func() { fn(dirty) }
}

func (s *Session) recomputeDirtyLocked() func() {
	return s.setDirtyLocked(!record.Equal(s.current, s.baseline))
}
