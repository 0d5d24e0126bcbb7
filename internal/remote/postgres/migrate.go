package postgres

import (
	"context"
	"fmt"

	"github.com/sooperboring/content-studio/internal/catalog"
)

// auxTables are tables outside the content catalog: registered users for
// authentication and the dashboard allow-list.
var auxTables = []string{"users", "dashboard_users"}

// Migrate creates the entity tables, auxiliary tables and the object store
// if they do not exist. Safe to run on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	var tables []string
	for _, typ := range catalog.All() {
		tables = append(tables, typ.Table)
	}
	tables = append(tables, auxTables...)

	for _, table := range tables {
		if err := checkTable(table); err != nil {
			return err
		}
		_, err := s.pool.Exec(ctx, fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				data JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, table))
		if err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS objects (
			bucket TEXT NOT NULL,
			path TEXT NOT NULL,
			data BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (bucket, path)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create objects table: %w", err)
	}
	return nil
}
