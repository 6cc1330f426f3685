package companion

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"verdant/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	entries []HistoryEntry
	saves   int
}

func (m *memStore) Load() ([]HistoryEntry, error) { return m.entries, nil }

func (m *memStore) Save(entries []HistoryEntry) error {
	m.entries = append([]HistoryEntry(nil), entries...)
	m.saves++
	return nil
}

var historyNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestLog(store HistoryStore) *HistoryLog {
	l := NewHistoryLog(store)
	l.now = func() time.Time { return historyNow }
	return l
}

func TestLoadMergesServerStateWithoutDuplicates(t *testing.T) {
	completedAt := historyNow.Add(-2 * time.Hour)
	store := &memStore{entries: []HistoryEntry{
		// Written by the session that performed the completion. The derived
		// entry for the same event must not double it up.
		{ID: "local-1", Type: EventCompleted, ReminderID: "rem-1", Title: "Water", Timestamp: completedAt},
	}}
	log := newTestLog(store)

	done := completedAt
	require.NoError(t, log.Load([]models.Reminder{{
		ID:            "rem-1",
		Title:         "Water",
		Completed:     true,
		CompletedDate: &done,
		CreatedAt:     historyNow.Add(-48 * time.Hour),
	}}))

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, EventCompleted, entries[0].Type)
	assert.Equal(t, "local-1", entries[0].ID, "the locally written entry wins")
	assert.Equal(t, EventCreated, entries[1].Type)
}

func TestLoadDerivedEntriesSurviveAlone(t *testing.T) {
	log := newTestLog(&memStore{})

	done := historyNow.Add(-time.Hour)
	require.NoError(t, log.Load([]models.Reminder{{
		ID:            "rem-1",
		Title:         "Fertilize",
		Completed:     true,
		CompletedDate: &done,
		CreatedAt:     historyNow.Add(-24 * time.Hour),
	}}))

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, EventCompleted, entries[0].Type)
	assert.Equal(t, EventCreated, entries[1].Type)
}

func TestLoadDropsEntriesPastRetention(t *testing.T) {
	store := &memStore{entries: []HistoryEntry{
		{ID: "old", Type: EventCompleted, ReminderID: "rem-1", Timestamp: historyNow.Add(-31 * 24 * time.Hour)},
		{ID: "recent", Type: EventCompleted, ReminderID: "rem-2", Timestamp: historyNow.Add(-time.Hour)},
	}}
	log := newTestLog(store)

	require.NoError(t, log.Load(nil))

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "recent", entries[0].ID)
}

func TestRecordEnforcesCapDroppingOldest(t *testing.T) {
	store := &memStore{}
	log := newTestLog(store)

	base := historyNow.Add(-10 * 24 * time.Hour)
	for i := 0; i < historyCap+20; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		log.now = func() time.Time { return ts }
		require.NoError(t, log.Record(EventNotified, fmt.Sprintf("rem-%d", i), "Water"))
	}

	entries := log.Entries()
	require.Len(t, entries, historyCap)
	assert.Equal(t, fmt.Sprintf("rem-%d", historyCap+19), entries[0].ReminderID, "newest first")
	assert.Equal(t, fmt.Sprintf("rem-%d", 20), entries[len(entries)-1].ReminderID, "oldest were dropped")
}

func TestRecordPersistsEveryMutation(t *testing.T) {
	store := &memStore{}
	log := newTestLog(store)

	require.NoError(t, log.Record(EventNotified, "rem-1", "Water"))
	require.NoError(t, log.Record(EventCompleted, "rem-1", "Water"))

	assert.Equal(t, 2, store.saves)
	assert.Len(t, store.entries, 2)
}

func TestIsDuplicate(t *testing.T) {
	ts := historyNow
	a := HistoryEntry{ID: "x", Type: EventCompleted, ReminderID: "rem-1", Timestamp: ts}

	assert.True(t, isDuplicate(a, HistoryEntry{ID: "x"}), "same ID is always a duplicate")
	assert.True(t, isDuplicate(a, HistoryEntry{ID: "y", Type: EventCompleted, ReminderID: "rem-1", Timestamp: ts.Add(500 * time.Millisecond)}))
	assert.False(t, isDuplicate(a, HistoryEntry{ID: "y", Type: EventCompleted, ReminderID: "rem-1", Timestamp: ts.Add(2 * time.Second)}))
	assert.False(t, isDuplicate(a, HistoryEntry{ID: "y", Type: EventSnoozed, ReminderID: "rem-1", Timestamp: ts}))
	assert.False(t, isDuplicate(a, HistoryEntry{ID: "y", Type: EventCompleted, ReminderID: "rem-2", Timestamp: ts}))
}

func TestFileHistoryStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store := NewFileHistoryStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file reads as empty")

	entries := []HistoryEntry{
		{ID: "a", Type: EventNotified, ReminderID: "rem-1", Title: "Water", Timestamp: historyNow},
	}
	require.NoError(t, store.Save(entries))

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}
