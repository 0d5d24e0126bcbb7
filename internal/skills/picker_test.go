package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_TrimsAndDedupes(t *testing.T) {
	p := NewPicker()

	assert.True(t, p.Add("  SCORM  "))
	assert.False(t, p.Add("SCORM"))
	assert.False(t, p.Add("   "))
	assert.True(t, p.Add("My Niche Tool")) // freeform, not in the taxonomy

	assert.Equal(t, []string{"SCORM", "My Niche Tool"}, p.Selected())
}

func TestRemove(t *testing.T) {
	p := NewPicker()
	p.Add("SCORM")
	p.Add("xAPI")

	assert.True(t, p.Remove("SCORM"))
	assert.False(t, p.Remove("SCORM"))
	assert.Equal(t, []string{"xAPI"}, p.Selected())
}

func TestSetSelected_DedupesPreservingOrder(t *testing.T) {
	p := NewPicker()
	p.SetSelected([]string{"xAPI", " SCORM ", "xAPI", "", "ADDIE", "SCORM"})
	assert.Equal(t, []string{"xAPI", "SCORM", "ADDIE"}, p.Selected())
}

func TestSuggest_MatchesCaseInsensitive(t *testing.T) {
	p := NewPicker()

	got := p.Suggest("articulate")
	assert.Equal(t, []string{"Articulate Storyline", "Articulate Rise"}, got)

	assert.Nil(t, p.Suggest(""))
	assert.Nil(t, p.Suggest("no such skill anywhere"))
}

func TestSuggest_ExcludesSelected(t *testing.T) {
	p := NewPicker()
	p.Add("Articulate Storyline")

	got := p.Suggest("articulate")
	assert.Equal(t, []string{"Articulate Rise"}, got)
}

func TestSuggest_CapsResults(t *testing.T) {
	p := NewPicker()
	// A single-letter term matches far more than the cap.
	got := p.Suggest("a")
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), SuggestLimit)
	assert.Len(t, got, SuggestLimit)
}

func TestParseList(t *testing.T) {
	got := ParseList(" SCORM, xAPI ,, ADDIE ")
	assert.Equal(t, []string{"SCORM", "xAPI", "ADDIE"}, got)
	assert.Nil(t, ParseList("  ,  "))
}

type sinkSpy struct {
	field string
	value any
}

func (s *sinkSpy) Set(field string, value any) { s.field, s.value = field, value }

func TestApply_WritesSkillsField(t *testing.T) {
	p := NewPicker()
	p.SetSelected([]string{"SCORM", "xAPI"})

	var sink sinkSpy
	p.Apply(&sink)

	assert.Equal(t, "skills", sink.field)
	assert.Equal(t, []string{"SCORM", "xAPI"}, sink.value)
}
