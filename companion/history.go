package companion

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"verdant/models"
)

type EventType string

const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventCompleted EventType = "completed"
	EventSnoozed   EventType = "snoozed"
	EventNotified  EventType = "notified"
	EventDeleted   EventType = "deleted"
)

type HistoryEntry struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ReminderID string    `json:"reminderId"`
	Title      string    `json:"title"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	historyCap       = 150
	historyRetention = 30 * 24 * time.Hour

	// Two entries for the same reminder and event within this window are
	// treated as the same occurrence, even when their IDs differ.
	duplicateWindow = time.Second
)

// HistoryLog is the companion's activity record. It reconciles entries
// derived from server state with what earlier sessions persisted locally,
// so a completion seen through a fresh fetch does not duplicate the entry
// the session that performed it already wrote.
type HistoryLog struct {
	mu      sync.Mutex
	entries []HistoryEntry
	store   HistoryStore
	now     func() time.Time
}

func NewHistoryLog(store HistoryStore) *HistoryLog {
	return &HistoryLog{store: store, now: time.Now}
}

// Load reads the persisted log, merges in entries derived from the given
// server reminders, and drops anything past retention.
func (l *HistoryLog) Load(serverReminders []models.Reminder) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	persisted, err := l.store.Load()
	if err != nil {
		return err
	}

	now := l.now()
	merged := persisted
	for _, derived := range deriveEntries(serverReminders) {
		merged = appendUnique(merged, derived)
	}

	cutoff := now.Add(-historyRetention)
	kept := merged[:0]
	for _, e := range merged {
		if e.Timestamp.After(cutoff) {
			kept = append(kept, e)
		}
	}

	l.entries = trim(kept)
	return l.store.Save(l.entries)
}

// Record adds an entry for an event observed this session and persists
// immediately.
func (l *HistoryLog) Record(eventType EventType, reminderID, title string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := HistoryEntry{
		ID:         uuid.NewString(),
		Type:       eventType,
		ReminderID: reminderID,
		Title:      title,
		Timestamp:  l.now(),
	}
	l.entries = trim(appendUnique(l.entries, entry))
	return l.store.Save(l.entries)
}

// Entries returns a newest-first snapshot of the log.
func (l *HistoryLog) Entries() []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// deriveEntries reconstructs history from server reminder state, covering
// events that happened while the companion was not running.
func deriveEntries(reminders []models.Reminder) []HistoryEntry {
	var entries []HistoryEntry
	for _, rem := range reminders {
		entries = append(entries, HistoryEntry{
			ID:         "srv-created-" + rem.ID,
			Type:       EventCreated,
			ReminderID: rem.ID,
			Title:      rem.Title,
			Timestamp:  rem.CreatedAt,
		})
		if rem.Completed && rem.CompletedDate != nil {
			entries = append(entries, HistoryEntry{
				ID:         "srv-completed-" + rem.ID,
				Type:       EventCompleted,
				ReminderID: rem.ID,
				Title:      rem.Title,
				Timestamp:  *rem.CompletedDate,
			})
		}
		if rem.NotificationSent {
			entries = append(entries, HistoryEntry{
				ID:         "srv-notified-" + rem.ID,
				Type:       EventNotified,
				ReminderID: rem.ID,
				Title:      rem.Title,
				Timestamp:  rem.UpdatedAt,
			})
		}
		// A bumped UpdatedAt with no completion or notification attached
		// means the latest change was a plain edit.
		if rem.UpdatedAt.After(rem.CreatedAt) && !rem.Completed && !rem.NotificationSent {
			entries = append(entries, HistoryEntry{
				ID:         "srv-updated-" + rem.ID,
				Type:       EventUpdated,
				ReminderID: rem.ID,
				Title:      rem.Title,
				Timestamp:  rem.UpdatedAt,
			})
		}
	}
	return entries
}

func appendUnique(entries []HistoryEntry, candidate HistoryEntry) []HistoryEntry {
	for _, e := range entries {
		if isDuplicate(e, candidate) {
			return entries
		}
	}
	return append(entries, candidate)
}

func isDuplicate(a, b HistoryEntry) bool {
	if a.ID != "" && a.ID == b.ID {
		return true
	}
	if a.Type != b.Type || a.ReminderID != b.ReminderID {
		return false
	}
	delta := a.Timestamp.Sub(b.Timestamp)
	if delta < 0 {
		delta = -delta
	}
	return delta < duplicateWindow
}

// trim sorts newest-first and enforces the cap, dropping the oldest entries.
func trim(entries []HistoryEntry) []HistoryEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > historyCap {
		entries = entries[:historyCap]
	}
	return entries
}
