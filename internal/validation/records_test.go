package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/record"
)

func TestValidateRecord_AcceptsCompletePayloads(t *testing.T) {
	cases := []struct {
		typ catalog.Type
		rec record.Record
	}{
		{catalog.Articles, record.Record{"title": "Learning in the Flow of Work", "author": "Ada"}},
		{catalog.Jobs, record.Record{"title": "Instructional Designer", "company": "Acme"}},
		{catalog.Theories, record.Record{"title": "Cognitive Load Theory"}},
		{catalog.Videos, record.Record{"title": "Demo", "video_url": "https://youtu.be/x"}},
		{catalog.Spotlights, record.Record{"name": "Grace"}},
		{catalog.Profiles, record.Record{"name": "Ada", "skills": []string{"SCORM"}}},
	}
	for _, tc := range cases {
		assert.NoError(t, ValidateRecord(tc.typ, tc.rec), tc.typ.Name)
	}
}

func TestValidateRecord_MissingRequiredField(t *testing.T) {
	err := ValidateRecord(catalog.Articles, record.Record{"title": "No Author"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "author")
}

func TestValidateRecord_WrongFieldType(t *testing.T) {
	err := ValidateRecord(catalog.Profiles, record.Record{
		"name":   "Ada",
		"skills": "SCORM, xAPI",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "skills", ve.Errors[0].Field)
}

func TestValidateRecord_ExtraFieldsAllowed(t *testing.T) {
	err := ValidateRecord(catalog.Theories, record.Record{
		"title":        "Constructivism",
		"custom_field": "anything",
	})
	assert.NoError(t, err)
}
