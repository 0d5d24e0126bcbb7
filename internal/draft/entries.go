package draft

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sooperboring/content-studio/internal/record"
)

// ErrLastEntry is returned when removing the only entry of a sub-record list
// from a session that keeps a one-entry minimum.
type ErrLastEntry struct {
	Field string
}

func (e *ErrLastEntry) Error() string {
	return fmt.Sprintf("cannot remove the last %s entry", e.Field)
}

// ErrEntryNotFound is returned when no entry with the given id exists.
type ErrEntryNotFound struct {
	Field string
	ID    string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("no %s entry with id %s", e.Field, e.ID)
}

// AddEntry appends a new sub-record with a freshly generated local id to a
// list field (experiences, education) and returns a copy of it.
func (s *Session) AddEntry(field string) record.Record {
	entry := record.Record{"id": uuid.NewString()}

	s.mu.Lock()
	list, _ := s.current[field].([]any)
	s.current[field] = append(list, entry.Clone())
	notify := s.recomputeDirtyLocked()
	s.mu.Unlock()
	notify()
	return entry
}

// RemoveEntry filters an entry out of a list field by id. Removing the last
// remaining entry fails unless the session was created with
// AllowEmptyEntries.
func (s *Session) RemoveEntry(field, entryID string) error {
	s.mu.Lock()
	list, _ := s.current[field].([]any)

	idx := indexOfEntry(list, entryID)
	if idx < 0 {
		s.mu.Unlock()
		return &ErrEntryNotFound{Field: field, ID: entryID}
	}
	if len(list) == 1 && !s.allowEmptyEntries {
		s.mu.Unlock()
		return &ErrLastEntry{Field: field}
	}

	s.current[field] = append(append([]any{}, list[:idx]...), list[idx+1:]...)
	notify := s.recomputeDirtyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// UpdateEntry mutates one field of a list entry in place. Setting the
// "current" flag to true nulls the entry's end_date in the same update;
// an ongoing position has no end date.
func (s *Session) UpdateEntry(field, entryID, subfield string, value any) error {
	s.mu.Lock()
	list, _ := s.current[field].([]any)

	idx := indexOfEntry(list, entryID)
	if idx < 0 {
		s.mu.Unlock()
		return &ErrEntryNotFound{Field: field, ID: entryID}
	}

	entry := entryAt(list, idx)
	entry[subfield] = record.Canon(value)
	if subfield == "current" {
		if flag, ok := value.(bool); ok && flag {
			entry["end_date"] = nil
		}
	}
	list[idx] = entry
	s.current[field] = list
	notify := s.recomputeDirtyLocked()
	s.mu.Unlock()
	notify()
	return nil
}

// Entries returns deep copies of a list field's sub-records.
func (s *Session) Entries(field string) []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone().Entries(field)
}

func indexOfEntry(list []any, entryID string) int {
	for i := range list {
		if entryAt(list, i).ID() == entryID {
			return i
		}
	}
	return -1
}

func entryAt(list []any, idx int) record.Record {
	switch sub := list[idx].(type) {
	case record.Record:
		return sub
	case map[string]any:
		return record.Record(sub)
	}
	return record.Record{}
}
