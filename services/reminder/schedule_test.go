package reminder

import (
	"testing"
	"time"

	"verdant/models"

	"github.com/stretchr/testify/assert"
)

func TestNextScheduledDate(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		freq models.Frequency
		want time.Time
	}{
		{"weekly day count", models.Frequency{Days: 7}, base.AddDate(0, 0, 7)},
		{"biweekly day count", models.Frequency{Days: 14}, base.AddDate(0, 0, 14)},
		{"custom day count", models.Frequency{Days: 3}, base.AddDate(0, 0, 3)},
		{"monthly advances a calendar month", models.Frequency{Period: models.PeriodMonthly}, time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)},
		{"unset falls back", models.Frequency{}, base.AddDate(0, 0, models.FallbackFrequencyDays)},
		{"negative days falls back", models.Frequency{Days: -2}, base.AddDate(0, 0, models.FallbackFrequencyDays)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextScheduledDate(base, tt.freq))
		})
	}
}

func TestNextScheduledDateMonthlyEndOfJanuary(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month into early March.
	got := NextScheduledDate(time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC), models.Frequency{Period: models.PeriodMonthly})
	assert.Equal(t, time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC), got)
}

func TestReschedule(t *testing.T) {
	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	done := completedAt
	rem := &models.Reminder{
		ScheduledDate:    completedAt.AddDate(0, 0, -1),
		Completed:        true,
		CompletedDate:    &done,
		Recurring:        true,
		Frequency:        models.Frequency{Days: 7},
		NotificationSent: true,
	}

	Reschedule(rem, completedAt)

	assert.Equal(t, completedAt.AddDate(0, 0, 7), rem.ScheduledDate)
	assert.False(t, rem.Completed)
	assert.Nil(t, rem.CompletedDate)
	assert.False(t, rem.NotificationSent)
}
