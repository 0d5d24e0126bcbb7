package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sooperboring/content-studio/internal/autosave"
	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/draft"
	"github.com/sooperboring/content-studio/internal/remote"
	"github.com/sooperboring/content-studio/internal/skills"
	"github.com/sooperboring/content-studio/internal/upload"
)

// editSession bundles the per-edit state: the draft, its auto-save
// scheduler, upload tracking and the skills picker.
type editSession struct {
	id       string
	typ      catalog.Type
	draft    *draft.Session
	sched    *autosave.Scheduler
	tracker  *upload.Tracker
	picker   *skills.Picker
	folderID string

	mu         sync.Mutex
	lastActive time.Time
}

func (es *editSession) touch() {
	es.mu.Lock()
	es.lastActive = time.Now()
	es.mu.Unlock()
}

func (es *editSession) idleSince() time.Time {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.lastActive
}

// uploadFields declares the uploadable fields per content type. Profiles
// carry the portfolio assets; videos take a custom thumbnail; everything
// else has a single primary image.
func uploadFields(typ catalog.Type) []upload.Field {
	switch typ.Name {
	case catalog.Profiles.Name:
		return []upload.Field{
			{Key: "profile_photo_url", Bucket: catalog.BucketProfilePhotos},
			{Key: "project1_folder_url", Bucket: catalog.BucketProjectFolders, Folder: true},
			{Key: "project2_folder_url", Bucket: catalog.BucketProjectFolders, Folder: true},
			{Key: "project1_thumbnail_url", Bucket: catalog.BucketProjectThumbnails},
			{Key: "project2_thumbnail_url", Bucket: catalog.BucketProjectThumbnails},
		}
	case catalog.Videos.Name:
		return []upload.Field{{Key: "thumbnail_url", Bucket: catalog.BucketVideoThumbnails}}
	default:
		return []upload.Field{{Key: "image_url", Bucket: typ.Bucket}}
	}
}

// registry owns all live editing sessions.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*editSession
	svc      remote.Service
	delay    time.Duration
}

func newRegistry(svc remote.Service, autoSaveDelay time.Duration) *registry {
	return &registry{
		sessions: make(map[string]*editSession),
		svc:      svc,
		delay:    autoSaveDelay,
	}
}

// Create opens an editing session for a record of the given type. An empty
// recordID starts a new draft.
func (r *registry) Create(ctx context.Context, typ catalog.Type, recordID string) (*editSession, error) {
	ds := draft.NewSession(r.svc, typ.Table, draft.AllowEmptyEntries())
	if recordID != "" {
		rec, err := r.svc.SelectOne(ctx, typ.Table, recordID)
		if err != nil {
			return nil, err
		}
		ds.Hydrate(rec)
	} else {
		ds.Hydrate(nil)
	}

	sched := autosave.New(ds, r.delay)
	ds.OnDirtyChange(sched.DirtyChanged)

	picker := skills.NewPicker()
	picker.SetSelected(ds.Snapshot().Strings("skills"))

	es := &editSession{
		id:         uuid.NewString(),
		typ:        typ,
		draft:      ds,
		sched:      sched,
		tracker:    upload.NewTracker(ds, uploadFields(typ)),
		picker:     picker,
		folderID:   uuid.NewString(),
		lastActive: time.Now(),
	}

	r.mu.Lock()
	r.sessions[es.id] = es
	r.mu.Unlock()
	return es, nil
}

// Get returns a live session and marks it active.
func (r *registry) Get(id string) (*editSession, error) {
	r.mu.Lock()
	es, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	es.touch()
	return es, nil
}

// Close ends a session. A dirty session must be closed with save or
// discard; otherwise the close is refused so no edits are silently lost.
func (r *registry) Close(ctx context.Context, id string, save, discard bool) error {
	r.mu.Lock()
	es, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return &ErrSessionNotFound{ID: id}
	}

	if es.draft.Dirty() && !save && !discard {
		return &ErrUnsavedChanges{}
	}
	if save && es.draft.Dirty() {
		if err := es.draft.Commit(ctx); err != nil {
			return err
		}
	}

	es.sched.Close()
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// ExpireIdle discards sessions idle for longer than ttl and returns how
// many were closed. A pending auto-save has already persisted anything the
// scheduler got to; remaining edits are dropped.
func (r *registry) ExpireIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	var expired []*editSession
	for id, es := range r.sessions {
		if es.idleSince().Before(cutoff) {
			expired = append(expired, es)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, es := range expired {
		es.sched.Close()
	}
	return len(expired)
}

// CloseAll shuts every session down without saving. Used on server stop.
func (r *registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*editSession)
	r.mu.Unlock()

	for _, es := range sessions {
		es.sched.Close()
	}
}
