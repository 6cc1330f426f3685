package reminder

import (
	"time"

	plantRepo "verdant/database/repository/plant"
	reminderRepo "verdant/database/repository/reminder"
	"verdant/models"
)

// ReminderService defines the reminder lifecycle operations. Every operation
// that touches an existing reminder enforces ownership.
type ReminderService interface {
	CreateReminder(userID string, req models.ReminderCreateRequest) (*models.Reminder, error)
	ListReminders(userID string) ([]models.Reminder, error)
	UpcomingReminders(userID string) ([]models.Reminder, error)
	DueReminders(userID string) ([]models.Reminder, error)
	UpdateReminder(userID, reminderID string, req models.ReminderUpdateRequest) (*models.Reminder, error)
	CompleteReminder(userID, reminderID string) (*models.Reminder, error)
	SnoozeReminder(userID, reminderID string, minutes int) (*models.Reminder, error)
	MarkNotificationSent(userID, reminderID string) error
	DeleteReminder(userID, reminderID string) error
}

// DefaultReminderService is the production implementation.
type DefaultReminderService struct {
	Repo   reminderRepo.ReminderRepository
	Plants plantRepo.PlantRepository

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
