// Package postgres implements remote.Service on PostgreSQL. Entity tables
// hold one jsonb document per record next to id and timestamp columns;
// uploaded objects live in a bytea table and are addressed by bucket and path.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// tablePattern guards identifiers interpolated into SQL. Table names come
// from the catalog, never from request input, but the guard keeps a typo from
// becoming an injection vector.
var tablePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool    *pgxpool.Pool
	baseURL string
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL, publicBaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool, baseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func checkTable(table string) error {
	if !tablePattern.MatchString(table) {
		return fmt.Errorf("invalid table name: %q", table)
	}
	return nil
}

// Select implements remote.Service.
func (s *Store) Select(ctx context.Context, table string, q remote.Query) ([]record.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, data, created_at FROM %s WHERE 1=1`, table)
	args := []any{}
	argNum := 1

	for field, value := range q.Eq {
		query += fmt.Sprintf(" AND data->>$%d = $%d", argNum, argNum+1)
		args = append(args, field, fmt.Sprintf("%v", value))
		argNum += 2
	}

	if q.Search != nil && q.Search.Term != "" {
		var clauses []string
		for _, field := range q.Search.Fields {
			clauses = append(clauses, fmt.Sprintf("data->>$%d ILIKE $%d", argNum, argNum+1))
			args = append(args, field, "%"+q.Search.Term+"%")
			argNum += 2
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	orderBy := "created_at"
	if q.OrderBy != "" && q.OrderBy != "created_at" {
		if !tablePattern.MatchString(q.OrderBy) {
			return nil, fmt.Errorf("invalid order field: %q", q.OrderBy)
		}
		orderBy = fmt.Sprintf("data->>'%s'", q.OrderBy)
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderBy, direction)

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, q.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	defer rows.Close()

	var out []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SelectOne implements remote.Service.
func (s *Store) SelectOne(ctx context.Context, table, id string) (record.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, data, created_at FROM %s WHERE id = $1`, table), id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, remote.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", table, err)
	}
	return rec, nil
}

// Insert implements remote.Service.
func (s *Store) Insert(ctx context.Context, table string, rec record.Record) (record.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	id := rec.ID()
	if id == "" {
		id = uuid.NewString()
	}
	data, err := marshalData(rec)
	if err != nil {
		return nil, err
	}

	var createdAt time.Time
	err = s.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2) RETURNING created_at`, table),
		id, data,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	stored := rec.Clone()
	stored.SetID(id)
	stored["created_at"] = createdAt.UTC().Format(time.RFC3339)
	return stored, nil
}

// Update implements remote.Service. The partial record is merged into the
// stored jsonb document; absent fields keep their stored values.
func (s *Store) Update(ctx context.Context, table, id string, partial record.Record) (record.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	data, err := marshalData(partial)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET data = data || $2, updated_at = NOW()
		 WHERE id = $1 RETURNING id, data, created_at`, table),
		id, data)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, remote.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s record: %w", table, err)
	}
	return rec, nil
}

// Delete implements remote.Service.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	result, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return remote.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (record.Record, error) {
	var (
		id        string
		data      []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &data, &createdAt); err != nil {
		return nil, err
	}

	rec := record.Record{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record data: %w", err)
		}
	}
	rec.SetID(id)
	rec["created_at"] = createdAt.UTC().Format(time.RFC3339)
	return rec.Clone(), nil
}

// marshalData serializes the record's fields, dropping the column-backed
// id and created_at keys from the jsonb document.
func marshalData(rec record.Record) ([]byte, error) {
	doc := rec.Clone()
	delete(doc, "id")
	delete(doc, "created_at")
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record data: %w", err)
	}
	return data, nil
}
