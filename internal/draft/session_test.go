package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote/remotetest"
)

func TestHydrate_ClearsDirty(t *testing.T) {
	s := NewSession(remotetest.New(), "profiles")

	s.Set("name", "Ada")
	require.True(t, s.Dirty())

	s.Hydrate(record.Record{"name": "Ada"})
	assert.False(t, s.Dirty())
	assert.Equal(t, "Ada", s.Snapshot().String("name"))
}

func TestSet_TracksDirtyAgainstBaseline(t *testing.T) {
	s := NewSession(remotetest.New(), "profiles")
	s.Hydrate(record.Record{"name": "Ada", "title": "Designer"})

	s.Set("name", "Grace")
	assert.True(t, s.Dirty())

	// Reverting to the baseline value clears the flag again.
	s.Set("name", "Ada")
	assert.False(t, s.Dirty())
}

func TestSet_IdempotentSetDoesNotFlipDirty(t *testing.T) {
	s := NewSession(remotetest.New(), "profiles")
	s.Hydrate(record.Record{"name": "Ada", "skills": []string{"SCORM"}})

	s.Set("name", "Ada")
	s.Set("skills", []string{"SCORM"})
	assert.False(t, s.Dirty())
}

func TestCommit_InsertAdoptsID(t *testing.T) {
	svc := remotetest.New()
	s := NewSession(svc, "profiles")
	s.Hydrate(nil)

	s.Set("name", "Ada")
	require.True(t, s.Dirty())

	require.NoError(t, s.Commit(context.Background()))

	assert.False(t, s.Dirty())
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "Ada", s.Baseline().String("name"))
	assert.Equal(t, 1, svc.Count("profiles"))
}

func TestCommit_UpdateExistingRecord(t *testing.T) {
	svc := remotetest.New()
	seeded := svc.Seed("profiles", record.Record{"name": "Ada", "title": "Designer"})

	s := NewSession(svc, "profiles")
	s.Hydrate(seeded)
	s.Set("title", "Lead Designer")

	require.NoError(t, s.Commit(context.Background()))

	stored, ok := svc.Get("profiles", seeded.ID())
	require.True(t, ok)
	assert.Equal(t, "Lead Designer", stored.String("title"))
	assert.False(t, s.Dirty())
}

func TestCommit_FailureLeavesStateUntouched(t *testing.T) {
	svc := remotetest.New()
	svc.InsertErr = errors.New("service unavailable")

	s := NewSession(svc, "profiles")
	s.Hydrate(nil)
	s.Set("name", "Ada")

	err := s.Commit(context.Background())
	require.Error(t, err)

	assert.True(t, s.Dirty())
	assert.Empty(t, s.ID())
	assert.Empty(t, s.Baseline().String("name"))
}

func TestCommit_EditDuringFlightStaysDirty(t *testing.T) {
	// A commit snapshot taken before a concurrent edit must not mark the
	// newer edit as persisted.
	svc := remotetest.New()
	s := NewSession(svc, "profiles")
	s.Hydrate(record.Record{"name": "Ada"})
	s.Set("name", "Grace")

	require.NoError(t, s.Commit(context.Background()))
	assert.False(t, s.Dirty())

	s.Set("name", "Katherine")
	assert.True(t, s.Dirty())
}

func TestOnDirtyChange_FiresOnTransitionsOnly(t *testing.T) {
	s := NewSession(remotetest.New(), "profiles")
	s.Hydrate(record.Record{"name": "Ada"})

	var transitions []bool
	s.OnDirtyChange(func(dirty bool) { transitions = append(transitions, dirty) })

	s.Set("name", "Grace")     // false -> true
	s.Set("title", "Designer") // still true, no callback
	s.Set("name", "Ada")       // still true (title differs)

	assert.Equal(t, []bool{true}, transitions)
	assert.True(t, s.Dirty())
}
