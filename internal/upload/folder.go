package upload

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sooperboring/content-studio/internal/remote"
)

// uploadConcurrency bounds parallel object uploads within one folder batch.
const uploadConcurrency = 4

// Unit is one file of a folder upload, addressed by its path relative to
// the folder root.
type Unit struct {
	RelPath string
	Data    []byte
}

// destinationName renames an exported course entry point on upload:
// authoring tools emit story.html, web servers expect index.html.
func destinationName(name string) string {
	if name == "story.html" {
		return "index.html"
	}
	return name
}

// DestPath maps a relative source path into the destination folder,
// applying the entry point rename to the base name only.
func DestPath(folderID, relPath string) string {
	dir, base := path.Split(relPath)
	return path.Join(folderID, dir, destinationName(base))
}

// RootDir returns the first segment of a relative path, or "" for paths
// without a directory.
func RootDir(relPath string) string {
	if i := strings.IndexByte(relPath, '/'); i > 0 {
		return relPath[:i]
	}
	return ""
}

// UploadFile uploads a single file and finishes the field with its public
// URL. The draft field keeps its old value on failure.
func UploadFile(ctx context.Context, t *Tracker, key string, svc remote.Service, destPath, name string, data []byte) error {
	field, ok := t.FieldFor(key)
	if !ok {
		return fmt.Errorf("no uploadable field %q", key)
	}
	if err := t.Begin(key, []string{name}); err != nil {
		return err
	}

	url, err := svc.Upload(ctx, field.Bucket, destPath, data)
	if err != nil {
		t.Fail(key, err)
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	t.CompleteUnit(key, 0)
	t.Finish(key, url)
	return nil
}

// UploadFolder uploads every unit of a folder batch under folderID, with
// bounded concurrency and per-unit progress. On success the field receives
// the viewer URL of the folder's index.html. Any unit failure fails the
// whole batch.
func UploadFolder(ctx context.Context, t *Tracker, key string, svc remote.Service, folderID string, units []Unit) error {
	field, ok := t.FieldFor(key)
	if !ok {
		return fmt.Errorf("no uploadable field %q", key)
	}
	if !field.Folder {
		return fmt.Errorf("field %q does not accept folder uploads", key)
	}
	if len(units) == 0 {
		return fmt.Errorf("empty folder upload for %q", key)
	}

	names := make([]string, len(units))
	for i, unit := range units {
		names[i] = unit.RelPath
	}
	if err := t.Begin(key, names); err != nil {
		return err
	}

	root := RootDir(units[0].RelPath)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, unit := range units {
		g.Go(func() error {
			if _, err := svc.Upload(ctx, field.Bucket, DestPath(folderID, unit.RelPath), unit.Data); err != nil {
				return fmt.Errorf("failed to upload %s: %w", unit.RelPath, err)
			}
			t.CompleteUnit(key, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fail(key, err)
		return err
	}

	t.Finish(key, svc.PublicURL(field.Bucket, path.Join(folderID, root, "index.html")))
	return nil
}
