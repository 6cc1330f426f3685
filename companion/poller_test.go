package companion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"verdant/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu        sync.Mutex
	due       []models.Reminder
	dueErr    error
	dueCalls  int
	notified  []string
	completed []string
	snoozed   map[string]int

	completeErr error
	snoozeErr   error
}

func newFakeAPI(due ...models.Reminder) *fakeAPI {
	return &fakeAPI{due: due, snoozed: make(map[string]int)}
}

func (f *fakeAPI) DueReminders(ctx context.Context) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dueCalls++
	if f.dueErr != nil {
		return nil, f.dueErr
	}
	return append([]models.Reminder(nil), f.due...), nil
}

func (f *fakeAPI) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	return f.DueReminders(ctx)
}

func (f *fakeAPI) CompleteReminder(ctx context.Context, reminderID string) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	f.completed = append(f.completed, reminderID)
	return &models.Reminder{ID: reminderID}, nil
}

func (f *fakeAPI) SnoozeReminder(ctx context.Context, reminderID string, minutes int) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snoozeErr != nil {
		return nil, f.snoozeErr
	}
	f.snoozed[reminderID] = minutes
	return &models.Reminder{ID: reminderID}, nil
}

func (f *fakeAPI) MarkNotified(ctx context.Context, reminderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, reminderID)
	return nil
}

func (f *fakeAPI) notifiedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notified)
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dueCalls
}

var pollNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestPoller(api ReminderAPI) *Poller {
	history := NewHistoryLog(&memStore{})
	p := NewPoller(api, history, zap.NewNop())
	p.now = func() time.Time { return pollNow }
	return p
}

func dueServerReminder(id string, overdueBy time.Duration) models.Reminder {
	return models.Reminder{
		ID:            id,
		Type:          models.ReminderWatering,
		Title:         "Water the fern",
		ScheduledDate: pollNow.Add(-overdueBy),
		Recurring:     true,
		Active:        true,
	}
}

func TestPollSurfacesEachReminderOnce(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	p := newTestPoller(api)

	var surfaced []Notification
	p.OnNotify = func(n Notification) { surfaced = append(surfaced, n) }

	require.NoError(t, p.Poll(context.Background(), false))
	require.NoError(t, p.Poll(context.Background(), false))

	require.Len(t, surfaced, 1, "a reminder still due on the next poll is not re-surfaced")
	assert.Equal(t, "reminder-rem-1", surfaced[0].ID)
	assert.Equal(t, PriorityMedium, surfaced[0].Priority)
	assert.Len(t, p.Notifications(), 1)

	assert.Eventually(t, func() bool { return api.notifiedCount() == 1 },
		time.Second, 10*time.Millisecond, "server is told exactly once")
}

func TestPollEscalatesOverdueReminders(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", 45*time.Minute))
	p := newTestPoller(api)

	require.NoError(t, p.Poll(context.Background(), false))

	notifications := p.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, PriorityHigh, notifications[0].Priority)

	var snoozeMinutes int
	for _, a := range notifications[0].Actions {
		if a.Kind == ActionSnooze {
			snoozeMinutes = a.SnoozeMinutes
		}
	}
	assert.Equal(t, overdueSnoozeMinutes, snoozeMinutes)
}

func TestPollRecordsNotificationInHistory(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	p := newTestPoller(api)

	require.NoError(t, p.Poll(context.Background(), false))

	entries := p.history.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, EventNotified, entries[0].Type)
	assert.Equal(t, "rem-1", entries[0].ReminderID)
}

func TestPollFailureSchedulesSingleRetry(t *testing.T) {
	api := newFakeAPI()
	api.dueErr = errors.New("server unreachable")
	p := newTestPoller(api)
	p.retryAfter = 10 * time.Millisecond

	require.Error(t, p.Poll(context.Background(), false))
	assert.Equal(t, p.errorInterval, p.interval(), "failed state shortens the poll interval")

	assert.Eventually(t, func() bool { return api.calls() >= 2 },
		time.Second, 5*time.Millisecond, "one retry fires after the delay")

	api.mu.Lock()
	api.dueErr = nil
	api.mu.Unlock()
	p.stopRetry()
}

func TestPollRecoveryRestoresInterval(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	api.dueErr = errors.New("server unreachable")
	p := newTestPoller(api)
	p.retryAfter = time.Hour // keep the retry out of this test

	require.Error(t, p.Poll(context.Background(), false))
	require.Equal(t, p.errorInterval, p.interval())

	api.mu.Lock()
	api.dueErr = nil
	api.mu.Unlock()

	require.NoError(t, p.Poll(context.Background(), false))
	assert.Equal(t, p.pollInterval, p.interval())
	p.stopRetry()
}

func TestCompleteResolvesNotification(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	p := newTestPoller(api)

	var notices []Notice
	p.OnNotice = func(n Notice) { notices = append(notices, n) }

	require.NoError(t, p.Poll(context.Background(), false))
	require.NoError(t, p.Complete(context.Background(), "reminder-rem-1"))

	assert.Empty(t, p.Notifications())
	assert.Equal(t, []string{"rem-1"}, api.completed)

	require.Len(t, notices, 1)
	assert.False(t, notices[0].IsError)

	var completed bool
	for _, e := range p.history.Entries() {
		if e.Type == EventCompleted && e.ReminderID == "rem-1" {
			completed = true
		}
	}
	assert.True(t, completed)
}

func TestCompleteFailureKeepsNotification(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	api.completeErr = errors.New("server error")
	p := newTestPoller(api)

	var notices []Notice
	p.OnNotice = func(n Notice) { notices = append(notices, n) }

	require.NoError(t, p.Poll(context.Background(), false))
	require.Error(t, p.Complete(context.Background(), "reminder-rem-1"))

	assert.Len(t, p.Notifications(), 1, "failed action leaves the notification in place")
	require.Len(t, notices, 1)
	assert.True(t, notices[0].IsError)
}

func TestSnoozeUsesNotificationAction(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", 45*time.Minute))
	p := newTestPoller(api)

	require.NoError(t, p.Poll(context.Background(), false))
	require.NoError(t, p.Snooze(context.Background(), "reminder-rem-1"))

	assert.Equal(t, overdueSnoozeMinutes, api.snoozed["rem-1"], "overdue notifications snooze longer")
	assert.Empty(t, p.Notifications())
}

func TestSnoozeUnknownNotification(t *testing.T) {
	p := newTestPoller(newFakeAPI())
	assert.Error(t, p.Snooze(context.Background(), "reminder-unknown"))
}

func TestDismissDropsWithoutServerCall(t *testing.T) {
	api := newFakeAPI(dueServerReminder("rem-1", time.Minute))
	p := newTestPoller(api)

	require.NoError(t, p.Poll(context.Background(), false))
	p.Dismiss("reminder-rem-1")

	assert.Empty(t, p.Notifications())
	assert.Empty(t, api.completed)
	assert.Empty(t, api.snoozed)
}
