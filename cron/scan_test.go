package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"verdant/models"
	"verdant/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeReminderRepo struct {
	reminders map[string]*models.Reminder
	findErr   error
	updateErr map[string]error
}

func newFakeReminderRepo(reminders ...*models.Reminder) *fakeReminderRepo {
	repo := &fakeReminderRepo{
		reminders: make(map[string]*models.Reminder),
		updateErr: make(map[string]error),
	}
	for _, rem := range reminders {
		cp := *rem
		repo.reminders[rem.ID] = &cp
	}
	return repo
}

func (f *fakeReminderRepo) GetByID(id string) (*models.Reminder, error) {
	rem, ok := f.reminders[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *rem
	return &cp, nil
}

func (f *fakeReminderRepo) GetByUser(userID string) ([]models.Reminder, error) { return nil, nil }

func (f *fakeReminderRepo) FindUpcoming(userID string, from, to time.Time) ([]models.Reminder, error) {
	return nil, nil
}

func (f *fakeReminderRepo) FindDue(now time.Time) ([]models.Reminder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Reminder
	for _, rem := range f.reminders {
		if rem.Due(now) {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) FindDueForUser(userID string, now time.Time) ([]models.Reminder, error) {
	return nil, nil
}

func (f *fakeReminderRepo) Create(rem *models.Reminder) error { return nil }

func (f *fakeReminderRepo) Update(rem *models.Reminder) error {
	if err := f.updateErr[rem.ID]; err != nil {
		return err
	}
	cp := *rem
	f.reminders[rem.ID] = &cp
	return nil
}

func (f *fakeReminderRepo) Delete(id string) error { return nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) Create(u *models.User) error                   { return nil }
func (f *fakeUserRepo) Update(u *models.User) error                   { return nil }
func (f *fakeUserRepo) Delete(id string) error                        { return nil }
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

type fakePlantRepo struct {
	plants map[string]*models.Plant
}

func (f *fakePlantRepo) GetByID(id string) (*models.Plant, error) {
	p, ok := f.plants[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (f *fakePlantRepo) GetByUser(userID string) ([]models.Plant, error) { return nil, nil }
func (f *fakePlantRepo) Create(p *models.Plant) error                    { return nil }
func (f *fakePlantRepo) Update(p *models.Plant) error                    { return nil }
func (f *fakePlantRepo) Delete(id string) error                          { return nil }

type recordingDispatcher struct {
	notices []models.ReminderNotice
	failFor map[string]error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, notice models.ReminderNotice) error {
	if err := d.failFor[notice.ReminderID]; err != nil {
		return err
	}
	d.notices = append(d.notices, notice)
	return nil
}

var scanNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func dueReminder(id string, recurring bool) *models.Reminder {
	return &models.Reminder{
		ID:            id,
		UserID:        "user-1",
		PlantID:       "plant-1",
		Type:          models.ReminderWatering,
		Title:         "Water",
		ScheduledDate: scanNow.Add(-time.Hour),
		Recurring:     recurring,
		Frequency:     models.Frequency{Days: 7},
		Active:        true,
	}
}

func newScan(repo *fakeReminderRepo, dispatcher *recordingDispatcher) *ReminderScan {
	return &ReminderScan{
		Reminders: repo,
		Users: &fakeUserRepo{users: map[string]*models.User{
			"user-1": {ID: "user-1", Email: "sam@example.com", FCMToken: "token-1"},
		}},
		Plants: &fakePlantRepo{plants: map[string]*models.Plant{
			"plant-1": {ID: "plant-1", UserID: "user-1", Name: "Monstera"},
		}},
		Dispatcher: dispatcher,
		Now:        func() time.Time { return scanNow },
	}
}

func TestTickDispatchesAndReschedulesRecurring(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("rem-1", true))
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	processed := scan.Tick(context.Background())
	assert.Equal(t, 1, processed)

	require.Len(t, dispatcher.notices, 1)
	notice := dispatcher.notices[0]
	assert.Equal(t, "rem-1", notice.ReminderID)
	assert.Equal(t, "sam@example.com", notice.Email)
	assert.Equal(t, "Monstera", notice.PlantName)

	stored, err := repo.GetByID("rem-1")
	require.NoError(t, err)
	assert.Equal(t, scanNow.AddDate(0, 0, 7), stored.ScheduledDate)
	assert.False(t, stored.Completed)
	assert.False(t, stored.NotificationSent)
}

func TestTickMarksOneShotNotified(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("rem-1", false))
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	scan.Tick(context.Background())

	stored, err := repo.GetByID("rem-1")
	require.NoError(t, err)
	assert.True(t, stored.NotificationSent)
	assert.Equal(t, scanNow.Add(-time.Hour), stored.ScheduledDate, "one-shot schedule stays put")
}

func TestTickSkipsAlreadyNotified(t *testing.T) {
	rem := dueReminder("rem-1", false)
	rem.NotificationSent = true
	repo := newFakeReminderRepo(rem)
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	processed := scan.Tick(context.Background())
	assert.Zero(t, processed)
	assert.Empty(t, dispatcher.notices)
}

func TestTickDispatchFailureLeavesScheduleForRetry(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("rem-1", true))
	dispatcher := &recordingDispatcher{failFor: map[string]error{"rem-1": errors.New("queue down")}}
	scan := newScan(repo, dispatcher)

	processed := scan.Tick(context.Background())
	assert.Zero(t, processed)

	stored, err := repo.GetByID("rem-1")
	require.NoError(t, err)
	assert.Equal(t, scanNow.Add(-time.Hour), stored.ScheduledDate)
	assert.False(t, stored.NotificationSent)
}

func TestTickIsolatesPerItemFailures(t *testing.T) {
	bad := dueReminder("rem-bad", true)
	bad.UserID = "gone"
	repo := newFakeReminderRepo(bad, dueReminder("rem-ok", true))
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	processed := scan.Tick(context.Background())
	assert.Equal(t, 1, processed)

	require.Len(t, dispatcher.notices, 1)
	assert.Equal(t, "rem-ok", dispatcher.notices[0].ReminderID)
}

func TestTickFindDueErrorProcessesNothing(t *testing.T) {
	repo := newFakeReminderRepo()
	repo.findErr = errors.New("db down")
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	assert.Zero(t, scan.Tick(context.Background()))
	assert.Empty(t, dispatcher.notices)
}

func TestTickPersistenceFailureDoesNotCount(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("rem-1", true))
	repo.updateErr["rem-1"] = errors.New("write failed")
	dispatcher := &recordingDispatcher{}
	scan := newScan(repo, dispatcher)

	assert.Zero(t, scan.Tick(context.Background()))
}
