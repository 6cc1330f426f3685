package reminder

import (
	"fmt"
	"time"

	"verdant/models"
	"verdant/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// upcomingWindow is the horizon of the /reminders/upcoming view.
const upcomingWindow = 7 * 24 * time.Hour

// defaultSnoozeMinutes is applied when a snooze request carries no duration.
const defaultSnoozeMinutes = 30

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// CreateReminder validates the request, checks the plant belongs to the
// caller, and stores the reminder. Recurring defaults to true unless the
// request says otherwise.
func (s *DefaultReminderService) CreateReminder(userID string, req models.ReminderCreateRequest) (*models.Reminder, error) {
	if !models.ValidReminderType(req.Type) {
		return nil, fmt.Errorf("unknown reminder type %q", req.Type)
	}

	scheduled, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduledDate: %w", err)
	}

	plant, err := s.Plants.GetByID(req.PlantID)
	if err != nil {
		return nil, fmt.Errorf("plant lookup failed: %w", err)
	}
	if plant.UserID != userID {
		return nil, fmt.Errorf("plant %s: %w", req.PlantID, utils.ErrForbidden)
	}

	recurring := req.Recurring == nil || *req.Recurring
	freq := req.Frequency
	if recurring && freq.IsZero() {
		freq = models.Frequency{Days: models.DefaultFrequencyDays}
	}

	rem := &models.Reminder{
		ID:            uuid.NewString(),
		UserID:        userID,
		PlantID:       req.PlantID,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Notes:         req.Notes,
		ScheduledDate: scheduled,
		Recurring:     recurring,
		Frequency:     freq,
		Active:        true,
	}
	if err := s.Repo.Create(rem); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	utils.GetLogger().Info("Reminder created",
		zap.String("reminderID", rem.ID),
		zap.String("plantID", rem.PlantID),
		zap.String("type", string(rem.Type)))
	return rem, nil
}

// ListReminders returns all of the caller's reminders.
func (s *DefaultReminderService) ListReminders(userID string) ([]models.Reminder, error) {
	return s.Repo.GetByUser(userID)
}

// UpcomingReminders returns the caller's incomplete reminders for the next
// seven days, soonest first.
func (s *DefaultReminderService) UpcomingReminders(userID string) ([]models.Reminder, error) {
	now := s.now()
	return s.Repo.FindUpcoming(userID, now, now.Add(upcomingWindow))
}

// DueReminders returns the caller's reminders whose fire time has passed.
func (s *DefaultReminderService) DueReminders(userID string) ([]models.Reminder, error) {
	return s.Repo.FindDueForUser(userID, s.now())
}

// getOwned fetches a reminder and verifies the caller owns it.
func (s *DefaultReminderService) getOwned(userID, reminderID string) (*models.Reminder, error) {
	rem, err := s.Repo.GetByID(reminderID)
	if err != nil {
		return nil, err
	}
	if rem.UserID != userID {
		return nil, fmt.Errorf("reminder %s: %w", reminderID, utils.ErrForbidden)
	}
	return rem, nil
}

// UpdateReminder applies the provided fields.
func (s *DefaultReminderService) UpdateReminder(userID, reminderID string, req models.ReminderUpdateRequest) (*models.Reminder, error) {
	rem, err := s.getOwned(userID, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !models.ValidReminderType(*req.Type) {
			return nil, fmt.Errorf("unknown reminder type %q", *req.Type)
		}
		rem.Type = *req.Type
	}
	if req.Title != nil {
		rem.Title = *req.Title
	}
	if req.Description != nil {
		rem.Description = *req.Description
	}
	if req.Notes != nil {
		rem.Notes = *req.Notes
	}
	if req.ScheduledDate != nil {
		scheduled, err := parseDate(*req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduledDate: %w", err)
		}
		rem.ScheduledDate = scheduled
		rem.NotificationSent = false
	}
	if req.Frequency != nil {
		rem.Frequency = *req.Frequency
	}
	if req.Active != nil {
		rem.Active = *req.Active
	}

	if err := s.Repo.Update(rem); err != nil {
		return nil, err
	}
	return rem, nil
}

// CompleteReminder marks the reminder done. A recurring reminder is
// immediately advanced to its next occurrence with completion state cleared;
// a non-recurring one stays completed until deleted.
func (s *DefaultReminderService) CompleteReminder(userID, reminderID string) (*models.Reminder, error) {
	rem, err := s.getOwned(userID, reminderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rem.Completed = true
	rem.CompletedDate = &now
	if rem.Recurring {
		Reschedule(rem, now)
	}

	if err := s.Repo.Update(rem); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Reminder completed",
		zap.String("reminderID", rem.ID),
		zap.Bool("recurring", rem.Recurring),
		zap.Time("nextScheduledDate", rem.ScheduledDate))
	return rem, nil
}

// SnoozeReminder pushes the fire time forward from now by the given number of
// minutes (default 30) and rearms notification delivery.
func (s *DefaultReminderService) SnoozeReminder(userID, reminderID string, minutes int) (*models.Reminder, error) {
	rem, err := s.getOwned(userID, reminderID)
	if err != nil {
		return nil, err
	}
	if rem.Completed && !rem.Recurring {
		return nil, fmt.Errorf("reminder %s is already completed", reminderID)
	}
	if minutes <= 0 {
		minutes = defaultSnoozeMinutes
	}

	rem.ScheduledDate = s.now().Add(time.Duration(minutes) * time.Minute)
	rem.NotificationSent = false

	if err := s.Repo.Update(rem); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Reminder snoozed",
		zap.String("reminderID", rem.ID),
		zap.Int("minutes", minutes))
	return rem, nil
}

// MarkNotificationSent records that a notification was surfaced for the
// reminder. Called fire-and-forget by the companion poller.
func (s *DefaultReminderService) MarkNotificationSent(userID, reminderID string) error {
	rem, err := s.getOwned(userID, reminderID)
	if err != nil {
		return err
	}
	if rem.NotificationSent {
		return nil
	}
	rem.NotificationSent = true
	return s.Repo.Update(rem)
}

// DeleteReminder removes the reminder permanently.
func (s *DefaultReminderService) DeleteReminder(userID, reminderID string) error {
	if _, err := s.getOwned(userID, reminderID); err != nil {
		return err
	}
	if err := s.Repo.Delete(reminderID); err != nil {
		return err
	}
	utils.GetLogger().Info("Reminder deleted", zap.String("reminderID", reminderID))
	return nil
}
