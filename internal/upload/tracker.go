// Package upload tracks per-field upload state for an editing session and
// orchestrates single-file and folder uploads against the remote storage
// service.
package upload

import (
	"fmt"
	"sync"
	"time"
)

// Status of one file inside an upload batch.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// resetDelay is how long the completed progress bar stays at 100 before the
// cosmetic reset to zero.
const resetDelay = 2 * time.Second

// FileState is the visible state of one file in a batch.
type FileState struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// State is the visible upload state of one field.
type State struct {
	Uploading bool        `json:"uploading"`
	Progress  int         `json:"progress"`
	Files     []FileState `json:"files,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Field declares one uploadable field of an entity: the draft field key that
// receives the public URL, the destination bucket, and whether the field
// takes a folder of files rather than a single one.
type Field struct {
	Key    string
	Bucket string
	Folder bool
}

// FieldSink receives the public URL of a finished upload. The editing
// session satisfies it.
type FieldSink interface {
	Set(field string, value any)
}

// Tracker holds upload state for the declared fields of one session. Fields
// are fixed at construction; uploads for unknown fields are rejected.
type Tracker struct {
	mu     sync.Mutex
	fields map[string]Field
	states map[string]*State
	gen    map[string]int
	sink   FieldSink
}

// NewTracker declares the uploadable fields and the sink that receives
// finished URLs.
func NewTracker(sink FieldSink, fields []Field) *Tracker {
	t := &Tracker{
		fields: make(map[string]Field, len(fields)),
		states: make(map[string]*State, len(fields)),
		gen:    make(map[string]int, len(fields)),
		sink:   sink,
	}
	for _, f := range fields {
		t.fields[f.Key] = f
		t.states[f.Key] = &State{}
	}
	return t
}

// FieldFor returns the declaration of an uploadable field.
func (t *Tracker) FieldFor(key string) (Field, bool) {
	f, ok := t.fields[key]
	return f, ok
}

// Begin marks a field as uploading with the given file names, all pending.
// Fails for undeclared fields and for fields with an upload in flight.
func (t *Tracker) Begin(key string, names []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[key]
	if !ok {
		return fmt.Errorf("no uploadable field %q", key)
	}
	if state.Uploading {
		return fmt.Errorf("upload already in progress for %q", key)
	}

	files := make([]FileState, len(names))
	for i, name := range names {
		files[i] = FileState{Name: name, Status: StatusPending}
	}
	t.gen[key]++
	*state = State{Uploading: true, Files: files}
	return nil
}

// ReportProgress sets the progress percentage, clamped to 0..100.
func (t *Tracker) ReportProgress(key string, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.states[key]; ok && state.Uploading {
		state.Progress = percent
	}
}

// CompleteUnit marks the file at the given batch index as completed and
// recomputes progress from the completed/total ratio. Indexing keeps the
// ratio exact even when a batch repeats a file name.
func (t *Tracker) CompleteUnit(key string, index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[key]
	if !ok || !state.Uploading || index < 0 || index >= len(state.Files) {
		return
	}
	state.Files[index].Status = StatusCompleted

	completed := 0
	for i := range state.Files {
		if state.Files[i].Status == StatusCompleted {
			completed++
		}
	}
	state.Progress = completed * 100 / len(state.Files)
}

// Finish records a successful upload: the URL is written through to the
// sink, the field stops uploading at 100 percent, and after a short delay
// the bar resets to zero. A new upload started during the delay keeps its
// own progress.
func (t *Tracker) Finish(key, url string) {
	t.mu.Lock()
	state, ok := t.states[key]
	if !ok {
		t.mu.Unlock()
		return
	}
	state.Uploading = false
	state.Progress = 100
	state.Error = ""
	gen := t.gen[key]
	t.mu.Unlock()

	t.sink.Set(key, url)

	time.AfterFunc(resetDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen[key] == gen && !state.Uploading {
			state.Progress = 0
			state.Files = nil
		}
	})
}

// Fail records a failed upload. The draft field keeps its previous value.
func (t *Tracker) Fail(key string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.states[key]; ok {
		state.Uploading = false
		state.Progress = 0
		state.Error = err.Error()
	}
}

// State returns a copy of a field's upload state.
func (t *Tracker) State(key string) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.states[key]
	if !ok {
		return State{}, false
	}
	out := *state
	out.Files = append([]FileState(nil), state.Files...)
	return out, true
}
