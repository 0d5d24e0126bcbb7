package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// newTestStore connects to the database named by TEST_DATABASE_URL and runs
// migrations. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	store, err := Connect(context.Background(), databaseURL, "http://localhost:8080/storage")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(store.Close)
	return store
}

func TestStore_InsertSelectRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.Insert(ctx, "articles", record.Record{
		"title":  "Integration test article",
		"author": "Test Author",
	})
	require.NoError(t, err)
	require.NotEmpty(t, inserted.ID())
	t.Cleanup(func() { _ = store.Delete(ctx, "articles", inserted.ID()) })

	got, err := store.SelectOne(ctx, "articles", inserted.ID())
	require.NoError(t, err)
	assert.Equal(t, "Integration test article", got.String("title"))
	assert.NotEmpty(t, got.String("created_at"))
}

func TestStore_UpdateMergesPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.Insert(ctx, "articles", record.Record{
		"title":  "Before",
		"author": "Someone",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Delete(ctx, "articles", inserted.ID()) })

	updated, err := store.Update(ctx, "articles", inserted.ID(), record.Record{"title": "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.String("title"))
	assert.Equal(t, "Someone", updated.String("author"))
}

func TestStore_DeleteMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "articles", "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestStore_UploadAndObject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.Upload(ctx, "profile-photos", "it/test.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/storage/profile-photos/it/test.png", url)

	data, err := store.Object(ctx, "profile-photos", "it/test.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}
