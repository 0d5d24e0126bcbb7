// Package record defines the generic field-value record shared by every
// entity type (profiles, articles, jobs, theories, videos, spotlights).
package record

import "reflect"

// Record is one persisted entity: a mapping from field name to value.
// Supported value kinds are string, bool, float64, nil, []any and nested
// Record. Values are canonicalized on the way in (see Canon) so that deep
// comparison between a working copy and its baseline is reliable regardless
// of whether a value arrived from JSON decoding or from application code.
type Record map[string]any

// ID returns the record's opaque identifier, or "" when unassigned.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// SetID assigns the record's identifier.
func (r Record) SetID(id string) {
	r["id"] = id
}

// String returns the named field as a string ("" when absent or non-string).
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Bool returns the named field as a bool (false when absent or non-bool).
func (r Record) Bool(field string) bool {
	b, _ := r[field].(bool)
	return b
}

// Strings returns the named field as a string slice. Both []string and
// []any-of-strings forms are accepted; non-string elements are skipped.
func (r Record) Strings(field string) []string {
	switch v := r[field].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Entries returns the named field as a slice of sub-records (experience and
// education lists). Returns nil when the field is absent or not a list.
func (r Record) Entries(field string) []Record {
	list, ok := r[field].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(list))
	for _, e := range list {
		switch sub := e.(type) {
		case Record:
			out = append(out, sub)
		case map[string]any:
			out = append(out, Record(sub))
		}
	}
	return out
}

// Clone returns a canonicalized deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = Canon(v)
	}
	return out
}

// Canon deep-copies a value into canonical form: maps become Record, slices
// become []any, integer numerics become float64. Scalars pass through.
func Canon(v any) any {
	switch val := v.(type) {
	case Record:
		return val.Clone()
	case map[string]any:
		return Record(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Canon(e)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []Record:
		out := make([]any, len(val))
		for i, sub := range val {
			out[i] = sub.Clone()
		}
		return out
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// Equal reports deep structural equality between two records. Both sides are
// canonicalized first, so a []string on one side matches an equivalent []any
// of strings on the other.
func Equal(a, b Record) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a.Clone(), b.Clone())
}
