// Package browse lists, filters and deletes stored content records and
// derives the display fields (title, subtitle, thumbnail) each entity type
// shows in the manager list.
package browse

import (
	"context"
	"strings"

	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// Browser holds the fetched record list of one entity type. A fetch failure
// leaves an empty list plus an error message; the list and the message are
// never both populated.
type Browser struct {
	svc   remote.Service
	typ   catalog.Type
	items []record.Record
	err   string
	term  string
}

// New creates a browser for one entity type.
func New(svc remote.Service, typ catalog.Type) *Browser {
	return &Browser{svc: svc, typ: typ}
}

// Fetch loads the record list newest first. For server-filtered types the
// search term is pushed into the query; otherwise filtering stays
// client-side via ApplyFilter.
func (b *Browser) Fetch(ctx context.Context, term string) {
	b.term = term

	q := remote.Query{OrderBy: "created_at", Descending: true}
	if b.typ.ServerFiltered && strings.TrimSpace(term) != "" {
		q.Search = &remote.Search{Fields: b.typ.ServerFilterFields, Term: strings.TrimSpace(term)}
	}

	recs, err := b.svc.Select(ctx, b.typ.Table, q)
	if err != nil {
		b.items = nil
		b.err = "Failed to load " + b.typ.Label + ". Please try again."
		return
	}
	b.items = recs
	b.err = ""
}

// Items returns the fetched records, narrowed by the client-side filter for
// types that are not server-filtered. An empty term returns everything.
func (b *Browser) Items() []record.Record {
	if b.typ.ServerFiltered {
		return b.items
	}
	term := strings.ToLower(strings.TrimSpace(b.term))
	if term == "" {
		return b.items
	}

	var out []record.Record
	for _, rec := range b.items {
		for _, field := range b.typ.SearchFields {
			if strings.Contains(strings.ToLower(rec.String(field)), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// ApplyFilter updates the client-side term without refetching.
func (b *Browser) ApplyFilter(term string) {
	b.term = term
}

// Error returns the message of the last failed fetch or delete, or "".
func (b *Browser) Error() string {
	return b.err
}

// Delete removes one record remotely and drops it from the list on success.
// On failure the list is unchanged and Error reports the problem.
func (b *Browser) Delete(ctx context.Context, id string) error {
	if err := b.svc.Delete(ctx, b.typ.Table, id); err != nil {
		b.err = "Failed to delete. Please try again."
		return err
	}
	for i, rec := range b.items {
		if rec.ID() == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			break
		}
	}
	b.err = ""
	return nil
}
