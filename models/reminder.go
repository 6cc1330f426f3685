package models

import "time"

// ReminderType classifies the care task a reminder stands for.
type ReminderType string

const (
	ReminderWatering    ReminderType = "watering"
	ReminderFertilizing ReminderType = "fertilizing"
	ReminderPruning     ReminderType = "pruning"
	ReminderRepotting   ReminderType = "repotting"
	ReminderCustom      ReminderType = "custom"
)

// ValidReminderType reports whether t is one of the known care task types.
func ValidReminderType(t ReminderType) bool {
	switch t {
	case ReminderWatering, ReminderFertilizing, ReminderPruning, ReminderRepotting, ReminderCustom:
		return true
	}
	return false
}

// Reminder is a scheduled care task attached to a plant.
type Reminder struct {
	ID               string       `bson:"id" json:"id"`
	UserID           string       `bson:"userId" json:"userId"`
	PlantID          string       `bson:"plantId" json:"plantId"`
	Type             ReminderType `bson:"type" json:"type"`
	Title            string       `bson:"title" json:"title"`
	Description      string       `bson:"description,omitempty" json:"description,omitempty"`
	Notes            string       `bson:"notes,omitempty" json:"notes,omitempty"`
	ScheduledDate    time.Time    `bson:"scheduledDate" json:"scheduledDate"`
	Completed        bool         `bson:"completed" json:"completed"`
	CompletedDate    *time.Time   `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	Recurring        bool         `bson:"recurring" json:"recurring"`
	Frequency        Frequency    `bson:"frequency,omitempty" json:"frequency,omitempty"`
	NotificationSent bool         `bson:"notificationSent" json:"notificationSent"`
	Active           bool         `bson:"active" json:"active"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Due reports whether the reminder should fire at the given instant.
func (r Reminder) Due(now time.Time) bool {
	return r.Active && !r.Completed && !r.ScheduledDate.After(now)
}

// ReminderCreateRequest is the payload for POST /api/reminders.
type ReminderCreateRequest struct {
	PlantID       string       `json:"plant" binding:"required"`
	Type          ReminderType `json:"type" binding:"required"`
	Title         string       `json:"title" binding:"required"`
	Description   string       `json:"description"`
	Notes         string       `json:"notes"`
	ScheduledDate string       `json:"scheduledDate" binding:"required"`
	Recurring     *bool        `json:"recurring"`
	Frequency     Frequency    `json:"frequency"`
}

// ReminderUpdateRequest carries the editable fields of a reminder.
type ReminderUpdateRequest struct {
	Type          *ReminderType `json:"type,omitempty"`
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	ScheduledDate *string       `json:"scheduledDate,omitempty"`
	Frequency     *Frequency    `json:"frequency,omitempty"`
	Active        *bool         `json:"active,omitempty"`
}

// SnoozeRequest is the payload for PUT /api/reminders/:id/snooze.
type SnoozeRequest struct {
	Minutes int `json:"minutes"`
}

// ReminderNotice is the queue payload for a single due-reminder delivery.
type ReminderNotice struct {
	ReminderID string       `json:"reminderId"`
	UserID     string       `json:"userId"`
	Email      string       `json:"email"`
	FCMToken   string       `json:"fcmToken,omitempty"`
	PlantName  string       `json:"plantName"`
	Type       ReminderType `json:"type"`
	Title      string       `json:"title"`
	FireDate   time.Time    `json:"fireDate"`
}
