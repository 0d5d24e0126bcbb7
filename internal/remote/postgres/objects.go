package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sooperboring/content-studio/internal/remote"
)

// Upload implements remote.Service. Objects are upserted by (bucket, path)
// so re-uploading a file replaces the previous bytes at the same URL.
func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte) (string, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO objects (bucket, path, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (bucket, path) DO UPDATE SET data = $3, updated_at = NOW()`,
		bucket, path, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s/%s: %w", bucket, path, err)
	}
	return s.PublicURL(bucket, path), nil
}

// PublicURL implements remote.Service.
func (s *Store) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path)
}

// Object returns the stored bytes for an uploaded object, or ErrNotFound.
// Used by the storage serving handler.
func (s *Store) Object(ctx context.Context, bucket, path string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM objects WHERE bucket = $1 AND path = $2`,
		bucket, path,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, remote.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, path, err)
	}
	return data, nil
}
