package reminder

import (
	"time"

	"verdant/models"
)

// NextScheduledDate computes a recurring reminder's next occurrence from its
// completion time (or the fire time when it was never completed). Monthly
// recurrence advances by calendar month; everything else is a fixed day
// count, falling back to three days when the frequency is unset.
func NextScheduledDate(completedAt time.Time, f models.Frequency) time.Time {
	if f.Period == models.PeriodMonthly {
		return completedAt.AddDate(0, 1, 0)
	}
	days := f.Days
	if days <= 0 {
		days = models.FallbackFrequencyDays
	}
	return completedAt.AddDate(0, 0, days)
}

// Reschedule advances a recurring reminder past the given completion time and
// clears its completion state. Callers must check Recurring first; invoking
// this on a non-recurring reminder is a contract violation.
func Reschedule(rem *models.Reminder, completedAt time.Time) {
	rem.ScheduledDate = NextScheduledDate(completedAt, rem.Frequency)
	rem.Completed = false
	rem.CompletedDate = nil
	rem.NotificationSent = false
}
