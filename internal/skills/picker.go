// Package skills manages the skill list of a profile draft: a curated
// taxonomy for suggestions plus freeform entries, with order-preserving
// dedupe.
package skills

import (
	"strings"
	"sync"
)

// SuggestLimit caps how many taxonomy matches a suggestion query returns.
const SuggestLimit = 20

// Picker holds the selected skills of one editing session.
type Picker struct {
	mu       sync.Mutex
	selected []string
	taxonomy []string
}

// NewPicker creates a picker backed by the default taxonomy.
func NewPicker() *Picker {
	return &Picker{taxonomy: Taxonomy}
}

// Add appends a skill. Input is trimmed; empty strings and exact duplicates
// are no-ops. Returns whether the skill was added.
func (p *Picker) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, have := range p.selected {
		if have == skill {
			return false
		}
	}
	p.selected = append(p.selected, skill)
	return true
}

// Remove deletes a skill by exact match. Returns whether it was present.
func (p *Picker) Remove(skill string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, have := range p.selected {
		if have == skill {
			p.selected = append(p.selected[:i], p.selected[i+1:]...)
			return true
		}
	}
	return false
}

// Selected returns a copy of the current skill list in insertion order.
func (p *Picker) Selected() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.selected...)
}

// SetSelected replaces the list, trimming entries and dropping duplicates
// while preserving first-occurrence order.
func (p *Picker) SetSelected(skills []string) {
	deduped := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		deduped = append(deduped, skill)
	}

	p.mu.Lock()
	p.selected = deduped
	p.mu.Unlock()
}

// Suggest returns taxonomy entries containing term (case-insensitive),
// excluding already selected skills, capped at SuggestLimit. An empty term
// returns nothing.
func (p *Picker) Suggest(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	p.mu.Lock()
	selected := make(map[string]struct{}, len(p.selected))
	for _, skill := range p.selected {
		selected[skill] = struct{}{}
	}
	p.mu.Unlock()

	var matches []string
	for _, skill := range p.taxonomy {
		if !strings.Contains(strings.ToLower(skill), term) {
			continue
		}
		if _, taken := selected[skill]; taken {
			continue
		}
		matches = append(matches, skill)
		if len(matches) == SuggestLimit {
			break
		}
	}
	return matches
}

// ParseList splits a comma-separated skill string into trimmed entries,
// dropping empties. Used when importing a legacy flat skills field.
func ParseList(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// FieldSink is the single-field slice of the editing session the picker
// writes through.
type FieldSink interface {
	Set(field string, value any)
}

// Apply writes the selected skills into the draft's skills field.
func (p *Picker) Apply(sink FieldSink) {
	sink.Set("skills", p.Selected())
}
