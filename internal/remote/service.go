// Package remote defines the contract with the hosted content service that
// owns all persistence: table CRUD plus binary object storage with public
// URLs. The editing and browsing layers depend only on this interface.
package remote

import (
	"context"
	"errors"

	"github.com/sooperboring/content-studio/internal/record"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Search is a service-side substring filter (case-insensitive) applied as an
// OR across the named fields.
type Search struct {
	Fields []string
	Term   string
}

// Query narrows and orders a Select.
type Query struct {
	// Eq filters on exact field equality.
	Eq map[string]any

	// Search applies a service-side substring match.
	Search *Search

	// OrderBy names the ordering field; created_at when empty.
	OrderBy    string
	Descending bool

	// Limit caps the result count; 0 means no limit.
	Limit int
}

// Service is the collaborator contract for the hosted backend.
type Service interface {
	// Select returns the records of a table matching the query.
	Select(ctx context.Context, table string, q Query) ([]record.Record, error)

	// SelectOne returns a single record by id, or ErrNotFound.
	SelectOne(ctx context.Context, table, id string) (record.Record, error)

	// Insert stores a new record and returns it with its assigned id
	// and creation timestamp.
	Insert(ctx context.Context, table string, rec record.Record) (record.Record, error)

	// Update merges the partial record into the stored one and returns
	// the result, or ErrNotFound.
	Update(ctx context.Context, table, id string, partial record.Record) (record.Record, error)

	// Delete removes a record by id, or returns ErrNotFound.
	Delete(ctx context.Context, table, id string) error

	// Upload stores an object and returns its public URL.
	Upload(ctx context.Context, bucket, path string, data []byte) (string, error)

	// PublicURL returns the public URL an uploaded object is served from.
	PublicURL(bucket, path string) string
}
