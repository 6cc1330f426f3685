package companion

import (
	"fmt"
	"time"

	"verdant/models"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// overdueThreshold is how far past its fire time a reminder must be before
// its notification escalates to high priority and the longer snooze.
const overdueThreshold = 30 * time.Minute

const (
	defaultSnoozeMinutes = 30
	overdueSnoozeMinutes = 60
)

type ActionKind string

const (
	ActionComplete ActionKind = "complete"
	ActionSnooze   ActionKind = "snooze"
)

type Action struct {
	Kind          ActionKind `json:"kind"`
	SnoozeMinutes int        `json:"snoozeMinutes,omitempty"`
}

// Notification is a due reminder shaped for the companion's surface. The ID
// is derived from the reminder ID so repeated polls map to the same entry.
type Notification struct {
	ID         string    `json:"id"`
	ReminderID string    `json:"reminderId"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Priority   Priority  `json:"priority"`
	Actions    []Action  `json:"actions"`
	CreatedAt  time.Time `json:"createdAt"`
}

func notificationID(reminderID string) string {
	return "reminder-" + reminderID
}

func notificationFromReminder(rem models.Reminder, now time.Time) Notification {
	priority := PriorityMedium
	snooze := defaultSnoozeMinutes
	if now.Sub(rem.ScheduledDate) > overdueThreshold {
		priority = PriorityHigh
		snooze = overdueSnoozeMinutes
	}

	message := rem.Description
	if message == "" {
		message = fmt.Sprintf("Your %s reminder is due", rem.Type)
	}

	return Notification{
		ID:         notificationID(rem.ID),
		ReminderID: rem.ID,
		Title:      rem.Title,
		Message:    message,
		Priority:   priority,
		Actions: []Action{
			{Kind: ActionComplete},
			{Kind: ActionSnooze, SnoozeMinutes: snooze},
		},
		CreatedAt: now,
	}
}
