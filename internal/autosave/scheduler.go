// Package autosave debounces commits of a dirty editing session: every dirty
// transition re-arms a single timer, and a clean transition cancels it.
package autosave

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDelay is the debounce window between the last edit burst and the
// automatic commit.
const DefaultDelay = 30 * time.Second

// Committer is the slice of the editing session the scheduler drives.
type Committer interface {
	Dirty() bool
	Commit(ctx context.Context) error
}

// Scheduler owns at most one pending timer per session. Wire it up with
// session.OnDirtyChange(sched.DirtyChanged).
type Scheduler struct {
	mu      sync.Mutex
	session Committer
	delay   time.Duration
	timer   *time.Timer
	closed  bool
}

// New creates a scheduler for one session. A non-positive delay falls back
// to DefaultDelay.
func New(session Committer, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{session: session, delay: delay}
}

// DirtyChanged arms the commit timer on a transition to dirty and cancels it
// on a transition to clean. Re-arming replaces the pending timer, so timers
// never stack.
func (s *Scheduler) DirtyChanged(dirty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if dirty {
		s.timer = time.AfterFunc(s.delay, s.fire)
	}
}

// Pending reports whether a commit timer is armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Close cancels any pending timer. The scheduler accepts no further work.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	// A manual save may have landed between arming and firing.
	if !s.session.Dirty() {
		return
	}
	if err := s.session.Commit(context.Background()); err != nil {
		log.Printf("[autosave] commit failed, retrying in %s: %v", s.delay, err)
		s.rearm()
	}
}

// rearm schedules another attempt after a failed commit. The session is
// still dirty and reports no further transitions, so the scheduler must
// re-arm itself or auto-save would stay dead until a manual save.
func (s *Scheduler) rearm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}
