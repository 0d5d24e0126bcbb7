package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooperboring/content-studio/internal/draft"
	"github.com/sooperboring/content-studio/internal/remote/remotetest"
)

type fakeSession struct {
	mu      sync.Mutex
	dirty   bool
	commits int
	err     error
}

func (f *fakeSession) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

func (f *fakeSession) Commit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	if f.err != nil {
		return f.err
	}
	f.dirty = false
	return nil
}

func (f *fakeSession) setDirty(dirty bool) {
	f.mu.Lock()
	f.dirty = dirty
	f.mu.Unlock()
}

func (f *fakeSession) commitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits
}

func (f *fakeSession) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestScheduler_CommitsOnceAfterDelay(t *testing.T) {
	session := &fakeSession{}
	sched := New(session, 20*time.Millisecond)
	defer sched.Close()

	session.setDirty(true)
	sched.DirtyChanged(true)
	require.True(t, sched.Pending())

	waitFor(t, func() bool { return session.commitCount() == 1 })

	// The timer fired once and did not re-arm.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, session.commitCount())
	assert.False(t, sched.Pending())
}

func TestScheduler_RearmReplacesTimer(t *testing.T) {
	session := &fakeSession{}
	sched := New(session, 40*time.Millisecond)
	defer sched.Close()

	session.setDirty(true)
	sched.DirtyChanged(true)
	sched.DirtyChanged(true)
	sched.DirtyChanged(true)

	waitFor(t, func() bool { return session.commitCount() >= 1 })
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, session.commitCount())
}

func TestScheduler_CleanTransitionCancels(t *testing.T) {
	session := &fakeSession{}
	sched := New(session, 30*time.Millisecond)
	defer sched.Close()

	session.setDirty(true)
	sched.DirtyChanged(true)

	// Manual save: session goes clean before the timer fires.
	session.setDirty(false)
	sched.DirtyChanged(false)
	assert.False(t, sched.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, session.commitCount())
}

func TestScheduler_SkipsWhenAlreadyClean(t *testing.T) {
	// The timer may race a manual save that never reported the transition.
	session := &fakeSession{}
	sched := New(session, 10*time.Millisecond)
	defer sched.Close()

	sched.DirtyChanged(true)
	session.setDirty(false)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 0, session.commitCount())
}

func TestScheduler_CloseCancelsPendingWork(t *testing.T) {
	session := &fakeSession{dirty: true}
	sched := New(session, 20*time.Millisecond)

	sched.DirtyChanged(true)
	sched.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, session.commitCount())

	// A closed scheduler ignores further transitions.
	sched.DirtyChanged(true)
	assert.False(t, sched.Pending())
}

func TestScheduler_RearmsAfterFailedCommit(t *testing.T) {
	// A transient commit failure leaves the session dirty with no further
	// dirty transitions, so the scheduler must retry on its own.
	session := &fakeSession{dirty: true, err: errors.New("service unavailable")}
	sched := New(session, 15*time.Millisecond)
	defer sched.Close()

	sched.DirtyChanged(true)
	waitFor(t, func() bool { return session.commitCount() >= 1 })
	waitFor(t, sched.Pending)

	session.setErr(nil)
	waitFor(t, func() bool { return session.commitCount() >= 2 })
	waitFor(t, func() bool { return !session.Dirty() })
}

func TestScheduler_EditAfterFailedCommitStillAutoSaves(t *testing.T) {
	svc := remotetest.New()
	svc.InsertErr = errors.New("service unavailable")

	ds := draft.NewSession(svc, "profiles")
	ds.Hydrate(nil)
	sched := New(ds, 15*time.Millisecond)
	defer sched.Close()
	ds.OnDirtyChange(sched.DirtyChanged)

	ds.Set("name", "Ada")
	waitFor(t, sched.Pending)

	// The first attempt fails against the scripted error; the edit that
	// follows must still end up persisted by a later attempt.
	ds.Set("title", "Designer")
	waitFor(t, func() bool { return !ds.Dirty() })

	assert.Equal(t, 1, svc.Count("profiles"))
	assert.Equal(t, "Designer", ds.Baseline().String("title"))
}

func TestNew_DefaultDelay(t *testing.T) {
	sched := New(&fakeSession{}, 0)
	defer sched.Close()
	assert.Equal(t, DefaultDelay, sched.delay)
}
