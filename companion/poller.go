package companion

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Minute
	errorPollInterval   = 2 * time.Minute
	retryDelay          = 30 * time.Second
)

// Notice is a transient message for the companion surface, distinct from
// reminder notifications: action feedback, failures, and similar.
type Notice struct {
	Message string
	IsError bool
}

// Poller periodically fetches due reminders and maintains the set of active
// notifications. Notifications are keyed by reminder ID, so a reminder that
// stays due across polls surfaces exactly once until acted on or dismissed.
type Poller struct {
	api     ReminderAPI
	history *HistoryLog
	logger  *zap.Logger

	// OnNotify receives each newly surfaced notification. OnNotice receives
	// transient feedback. Both may be nil.
	OnNotify func(Notification)
	OnNotice func(Notice)

	pollInterval  time.Duration
	errorInterval time.Duration
	retryAfter    time.Duration
	now           func() time.Time

	mu             sync.Mutex
	active         map[string]Notification
	inFlight       bool
	lastErr        error
	retryScheduled bool
	retryTimer     *time.Timer
}

func NewPoller(api ReminderAPI, history *HistoryLog, logger *zap.Logger) *Poller {
	return &Poller{
		api:           api,
		history:       history,
		logger:        logger,
		pollInterval:  defaultPollInterval,
		errorInterval: errorPollInterval,
		retryAfter:    retryDelay,
		now:           time.Now,
		active:        make(map[string]Notification),
	}
}

// Run polls until ctx is cancelled. The interval shortens while the last
// poll failed so recovery is noticed sooner.
func (p *Poller) Run(ctx context.Context) {
	p.Poll(ctx, false)
	for {
		timer := time.NewTimer(p.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			p.stopRetry()
			return
		case <-timer.C:
			p.Poll(ctx, false)
		}
	}
}

func (p *Poller) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr != nil {
		return p.errorInterval
	}
	return p.pollInterval
}

// Poll fetches due reminders once. Overlapping calls are skipped unless
// forced by the failure retry.
func (p *Poller) Poll(ctx context.Context, force bool) error {
	p.mu.Lock()
	if p.inFlight && !force {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	due, err := p.api.DueReminders(ctx)
	if err != nil {
		p.logger.Warn("Due reminder poll failed", zap.Error(err))
		p.mu.Lock()
		p.lastErr = err
		shouldRetry := !p.retryScheduled
		if shouldRetry {
			p.retryScheduled = true
		}
		p.mu.Unlock()

		if shouldRetry {
			p.retryTimer = time.AfterFunc(p.retryAfter, func() {
				p.mu.Lock()
				p.retryScheduled = false
				p.mu.Unlock()
				p.Poll(ctx, true)
			})
		}
		return err
	}

	now := p.now()
	var fresh []Notification

	p.mu.Lock()
	p.lastErr = nil
	for _, rem := range due {
		id := notificationID(rem.ID)
		if _, seen := p.active[id]; seen {
			continue
		}
		n := notificationFromReminder(rem, now)
		p.active[id] = n
		fresh = append(fresh, n)
	}
	p.mu.Unlock()

	for _, n := range fresh {
		if p.OnNotify != nil {
			p.OnNotify(n)
		}
		if err := p.history.Record(EventNotified, n.ReminderID, n.Title); err != nil {
			p.logger.Warn("Failed to record notification in history", zap.Error(err))
		}
		// Best effort: the server uses this to stop re-dispatching, but a
		// miss only costs a repeat notification.
		go func(reminderID string) {
			mctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := p.api.MarkNotified(mctx, reminderID); err != nil {
				p.logger.Warn("Failed to mark reminder notified", zap.String("reminderID", reminderID), zap.Error(err))
			}
		}(n.ReminderID)
	}
	return nil
}

// Complete resolves a notification by completing its reminder. On failure
// the notification stays active.
func (p *Poller) Complete(ctx context.Context, notificationID string) error {
	n, ok := p.lookup(notificationID)
	if !ok {
		return fmt.Errorf("no active notification %s", notificationID)
	}

	if _, err := p.api.CompleteReminder(ctx, n.ReminderID); err != nil {
		p.notice(Notice{Message: fmt.Sprintf("Could not complete %q: %v", n.Title, err), IsError: true})
		return err
	}

	p.remove(notificationID)
	if err := p.history.Record(EventCompleted, n.ReminderID, n.Title); err != nil {
		p.logger.Warn("Failed to record completion in history", zap.Error(err))
	}
	p.notice(Notice{Message: fmt.Sprintf("%q marked as done", n.Title)})
	return nil
}

// Snooze resolves a notification by pushing its reminder forward. The snooze
// length comes from the notification's action, which escalates for overdue
// reminders.
func (p *Poller) Snooze(ctx context.Context, notificationID string) error {
	n, ok := p.lookup(notificationID)
	if !ok {
		return fmt.Errorf("no active notification %s", notificationID)
	}

	minutes := defaultSnoozeMinutes
	for _, a := range n.Actions {
		if a.Kind == ActionSnooze && a.SnoozeMinutes > 0 {
			minutes = a.SnoozeMinutes
		}
	}

	if _, err := p.api.SnoozeReminder(ctx, n.ReminderID, minutes); err != nil {
		p.notice(Notice{Message: fmt.Sprintf("Could not snooze %q: %v", n.Title, err), IsError: true})
		return err
	}

	p.remove(notificationID)
	if err := p.history.Record(EventSnoozed, n.ReminderID, n.Title); err != nil {
		p.logger.Warn("Failed to record snooze in history", zap.Error(err))
	}
	p.notice(Notice{Message: fmt.Sprintf("%q snoozed for %d minutes", n.Title, minutes)})
	return nil
}

// Dismiss drops a notification without touching the reminder. It will
// resurface on the next poll if the reminder is still due and the server has
// not been told it was notified.
func (p *Poller) Dismiss(notificationID string) {
	p.remove(notificationID)
}

// Notifications returns the active set, newest first.
func (p *Poller) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Notification, 0, len(p.active))
	for _, n := range p.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (p *Poller) lookup(id string) (Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok := p.active[id]
	return n, ok
}

func (p *Poller) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, id)
}

func (p *Poller) notice(n Notice) {
	if p.OnNotice != nil {
		p.OnNotice(n)
	}
}

func (p *Poller) stopRetry() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.retryTimer != nil {
		p.retryTimer.Stop()
	}
}
