package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordAppendsInOrder(t *testing.T) {
	log := NewLog(nil)
	for i := 0; i < 5; i++ {
		log.Record("actor-1", "CREATE_TASK", fmt.Sprintf("task-%d", i), "created")
	}

	entries := log.AllEntries()
	require.Len(t, entries, 5)
	for i, e := range entries {
		require.Equal(t, fmt.Sprintf("task-%d", i), e.EntityID)
		require.Equal(t, "actor-1", e.ActorID)
		require.False(t, e.Timestamp.IsZero())
	}
}

func TestEntriesForMatchesSubstring(t *testing.T) {
	log := NewLog(nil)
	log.Record("actor-1", "CREATE_PROJECT", "project-abc123", "created")
	log.Record("actor-1", "EDIT_PROJECT", "project-abc123", "edited")
	log.Record("actor-1", "CREATE_TEAM", "team-xyz", "created")
	log.Record("actor-2", "LOGIN", "USER", "login accepted")

	require.Len(t, log.EntriesFor("project-abc123"), 2)
	require.Len(t, log.EntriesFor("abc"), 2)
	require.Len(t, log.EntriesFor("USER"), 1)
	require.Empty(t, log.EntriesFor("nope"))

	// empty substring matches everything
	require.Len(t, log.EntriesFor(""), 4)
}

func TestAllEntriesReturnsCopy(t *testing.T) {
	log := NewLog(nil)
	log.Record("actor-1", "LOGIN", "USER", "login accepted")

	entries := log.AllEntries()
	entries[0].Details = "tampered"

	require.Equal(t, "login accepted", log.AllEntries()[0].Details)
}
