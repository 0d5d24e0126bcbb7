package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_DeepCopiesNestedValues(t *testing.T) {
	orig := Record{
		"name":   "Ada",
		"skills": []string{"e-learning", "Storyboarding"},
		"experiences": []any{
			map[string]any{"title": "Designer", "current": true},
		},
	}

	clone := orig.Clone()

	// Mutating the clone must not leak into the original.
	clone["name"] = "Grace"
	clone.Entries("experiences")[0]["title"] = "Lead Designer"

	assert.Equal(t, "Ada", orig.String("name"))
	assert.Equal(t, "Designer", orig.Entries("experiences")[0].String("title"))
}

func TestEqual_JSONAndNativeFormsMatch(t *testing.T) {
	native := Record{
		"title":  "Intro to SCORM",
		"skills": []string{"xAPI", "SCORM"},
		"views":  12,
	}

	data, err := json.Marshal(native.Clone())
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, Equal(native, decoded), cmp.Diff(native.Clone(), decoded.Clone()))
}

func TestEqual_DetectsDifference(t *testing.T) {
	a := Record{"name": "Ada", "current": true}
	b := Record{"name": "Ada", "current": false}

	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a.Clone()))
}

func TestStrings_AcceptsBothSliceForms(t *testing.T) {
	r := Record{"skills": []any{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, r.Strings("skills"))

	r = Record{"skills": []string{"c"}}
	assert.Equal(t, []string{"c"}, r.Strings("skills"))

	assert.Nil(t, Record{}.Strings("skills"))
}

func TestIDHelpers(t *testing.T) {
	r := Record{}
	assert.Empty(t, r.ID())

	r.SetID("abc-123")
	assert.Equal(t, "abc-123", r.ID())
}
