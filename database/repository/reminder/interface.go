package reminderRepo

import (
	"time"

	"verdant/models"
)

// ReminderRepository defines methods for reminder data access.
type ReminderRepository interface {
	// GetByID retrieves a reminder by its unique ID.
	GetByID(id string) (*models.Reminder, error)
	// GetByUser retrieves all reminders owned by the given user.
	GetByUser(userID string) ([]models.Reminder, error)
	// FindUpcoming retrieves a user's incomplete reminders scheduled inside
	// [from, to), sorted ascending by scheduledDate.
	FindUpcoming(userID string, from, to time.Time) ([]models.Reminder, error)
	// FindDue retrieves all active, incomplete reminders across users whose
	// scheduledDate is at or before now. Used by the scan job.
	FindDue(now time.Time) ([]models.Reminder, error)
	// FindDueForUser is FindDue scoped to one user. Used by the poll endpoint.
	FindDueForUser(userID string, now time.Time) ([]models.Reminder, error)
	// Create inserts a new reminder record.
	Create(reminder *models.Reminder) error
	// Update modifies an existing reminder record.
	Update(reminder *models.Reminder) error
	// Delete removes a reminder record by its ID.
	Delete(id string) error
}
