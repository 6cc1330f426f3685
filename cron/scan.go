package cron

import (
	"context"
	"time"

	plantRepo "verdant/database/repository/plant"
	reminderRepo "verdant/database/repository/reminder"
	userRepo "verdant/database/repository/user"
	"verdant/models"
	"verdant/services/reminder"
	"verdant/utils"

	"go.uber.org/zap"
)

// Dispatcher hands a due-reminder notice to the delivery pipeline.
type Dispatcher interface {
	Dispatch(ctx context.Context, notice models.ReminderNotice) error
}

// ReminderScan periodically finds due reminders, dispatches their
// notifications, and advances recurring schedules. Ticks run on a single
// goroutine, so a slow tick delays the next one rather than overlapping it.
type ReminderScan struct {
	Reminders  reminderRepo.ReminderRepository
	Users      userRepo.UserRepository
	Plants     plantRepo.PlantRepository
	Dispatcher Dispatcher

	Interval time.Duration

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *ReminderScan) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run blocks, scanning once per interval until the context is cancelled.
func (s *ReminderScan) Run(ctx context.Context) {
	logger := utils.GetLogger()
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Reminder scan started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder scan shutdown signal received")
			return
		case <-ticker.C:
			s.safeTick(ctx)
		}
	}
}

// safeTick runs one tick and swallows panics so a bad record can never kill
// the scheduler; the next tick still fires on schedule.
func (s *ReminderScan) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("Reminder scan tick panicked", zap.Any("panic", r))
		}
	}()
	s.Tick(ctx)
}

// Tick processes every due reminder once and returns the number processed.
// Per-item failures (deleted user or plant, dispatch errors, persistence
// errors) are logged and skipped; they never abort the batch.
func (s *ReminderScan) Tick(ctx context.Context) int {
	logger := utils.GetLogger()
	now := s.now()

	due, err := s.Reminders.FindDue(now)
	if err != nil {
		logger.Error("Failed to query due reminders", zap.Error(err))
		return 0
	}

	processed := 0
	for i := range due {
		rem := due[i]
		if rem.NotificationSent {
			// Already notified and waiting on the user; recurring reminders
			// only reach this state until their reschedule lands.
			continue
		}
		if s.processOne(ctx, &rem, now) {
			processed++
		}
	}

	logger.Info("Reminder scan tick finished",
		zap.Int("due", len(due)),
		zap.Int("processed", processed))
	return processed
}

func (s *ReminderScan) processOne(ctx context.Context, rem *models.Reminder, now time.Time) bool {
	logger := utils.GetLogger()

	usr, err := s.Users.GetByID(rem.UserID)
	if err != nil {
		logger.Warn("Skipping reminder: owner lookup failed",
			zap.String("reminderID", rem.ID),
			zap.String("userID", rem.UserID),
			zap.Error(err))
		return false
	}

	plant, err := s.Plants.GetByID(rem.PlantID)
	if err != nil {
		logger.Warn("Skipping reminder: plant lookup failed",
			zap.String("reminderID", rem.ID),
			zap.String("plantID", rem.PlantID),
			zap.Error(err))
		return false
	}

	notice := models.ReminderNotice{
		ReminderID: rem.ID,
		UserID:     usr.ID,
		Email:      usr.Email,
		FCMToken:   usr.FCMToken,
		PlantName:  plant.Name,
		Type:       rem.Type,
		Title:      rem.Title,
		FireDate:   rem.ScheduledDate,
	}
	if err := s.Dispatcher.Dispatch(ctx, notice); err != nil {
		// Leave the schedule untouched so the next tick retries this one.
		logger.Warn("Reminder dispatch failed",
			zap.String("reminderID", rem.ID),
			zap.Error(err))
		return false
	}

	if rem.Recurring {
		reminder.Reschedule(rem, now)
	} else {
		rem.NotificationSent = true
	}

	if err := s.Reminders.Update(rem); err != nil {
		logger.Error("Failed to persist rescheduled reminder",
			zap.String("reminderID", rem.ID),
			zap.Error(err))
		return false
	}
	return true
}
