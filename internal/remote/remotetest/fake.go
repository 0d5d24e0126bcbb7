// Package remotetest provides an in-memory remote.Service fake for package
// tests: records keyed by table and id, scripted failures, and capture of
// uploaded objects.
package remotetest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// Upload captures one stored object.
type Upload struct {
	Bucket string
	Path   string
	Data   []byte
}

// Fake is an in-memory remote.Service. The zero value is not usable; call New.
type Fake struct {
	mu     sync.Mutex
	tables map[string]map[string]record.Record
	seq    int

	// Scripted failures. When set, the corresponding call returns the
	// error once and clears it.
	SelectErr error
	InsertErr error
	UpdateErr error
	DeleteErr error
	UploadErr error

	// Uploads records every successful Upload call in order.
	Uploads []Upload

	// BaseURL prefixes public URLs. Defaults to "https://cdn.test".
	BaseURL string
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		tables:  make(map[string]map[string]record.Record),
		BaseURL: "https://cdn.test",
	}
}

// Seed inserts a record directly, assigning an id and creation order.
// Returns the stored record.
func (f *Fake) Seed(table string, rec record.Record) record.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(table, rec)
}

func (f *Fake) store(table string, rec record.Record) record.Record {
	stored := rec.Clone()
	if stored.ID() == "" {
		stored.SetID(uuid.NewString())
	}
	f.seq++
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).
			Add(time.Duration(f.seq) * time.Minute).Format(time.RFC3339)
	}
	if f.tables[table] == nil {
		f.tables[table] = make(map[string]record.Record)
	}
	f.tables[table][stored.ID()] = stored
	return stored.Clone()
}

// Count returns the number of records in a table.
func (f *Fake) Count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

// Get returns a stored record without going through Select.
func (f *Fake) Get(table, id string) (record.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.tables[table][id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Select implements remote.Service.
func (f *Fake) Select(_ context.Context, table string, q remote.Query) ([]record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SelectErr; err != nil {
		f.SelectErr = nil
		return nil, err
	}

	var out []record.Record
	for _, rec := range f.tables[table] {
		if !matchEq(rec, q.Eq) || !matchSearch(rec, q.Search) {
			continue
		}
		out = append(out, rec.Clone())
	}
	sortByCreatedAt(out, q.Descending)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// SelectOne implements remote.Service.
func (f *Fake) SelectOne(_ context.Context, table, id string) (record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SelectErr; err != nil {
		f.SelectErr = nil
		return nil, err
	}
	rec, ok := f.tables[table][id]
	if !ok {
		return nil, remote.ErrNotFound
	}
	return rec.Clone(), nil
}

// Insert implements remote.Service.
func (f *Fake) Insert(_ context.Context, table string, rec record.Record) (record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.InsertErr; err != nil {
		f.InsertErr = nil
		return nil, err
	}
	return f.store(table, rec), nil
}

// Update implements remote.Service.
func (f *Fake) Update(_ context.Context, table, id string, partial record.Record) (record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.UpdateErr; err != nil {
		f.UpdateErr = nil
		return nil, err
	}
	existing, ok := f.tables[table][id]
	if !ok {
		return nil, remote.ErrNotFound
	}
	merged := existing.Clone()
	for k, v := range partial.Clone() {
		merged[k] = v
	}
	merged.SetID(id)
	f.tables[table][id] = merged
	return merged.Clone(), nil
}

// Delete implements remote.Service.
func (f *Fake) Delete(_ context.Context, table, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteErr; err != nil {
		f.DeleteErr = nil
		return err
	}
	if _, ok := f.tables[table][id]; !ok {
		return remote.ErrNotFound
	}
	delete(f.tables[table], id)
	return nil
}

// Upload implements remote.Service.
func (f *Fake) Upload(_ context.Context, bucket, path string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.UploadErr; err != nil {
		f.UploadErr = nil
		return "", err
	}
	f.Uploads = append(f.Uploads, Upload{Bucket: bucket, Path: path, Data: append([]byte(nil), data...)})
	return f.publicURL(bucket, path), nil
}

// PublicURL implements remote.Service.
func (f *Fake) PublicURL(bucket, path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publicURL(bucket, path)
}

func (f *Fake) publicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(f.BaseURL, "/"), bucket, path)
}

func matchEq(rec record.Record, eq map[string]any) bool {
	for field, want := range eq {
		if !reflect.DeepEqual(record.Canon(rec[field]), record.Canon(want)) {
			return false
		}
	}
	return true
}

func matchSearch(rec record.Record, s *remote.Search) bool {
	if s == nil || s.Term == "" {
		return true
	}
	term := strings.ToLower(s.Term)
	for _, field := range s.Fields {
		if strings.Contains(strings.ToLower(rec.String(field)), term) {
			return true
		}
	}
	return false
}

func sortByCreatedAt(recs []record.Record, descending bool) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0; j-- {
			a, b := recs[j-1].String("created_at"), recs[j].String("created_at")
			swap := a < b
			if !descending {
				swap = a > b
			}
			if !swap {
				break
			}
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}
