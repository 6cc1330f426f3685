package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"verdant/models"
)

// AuthContext carries the credentials the companion uses against the server.
// It is passed explicitly to constructors; there is no ambient token state.
type AuthContext struct {
	BaseURL string
	Token   string
}

// ReminderAPI is the slice of the server the companion talks to.
type ReminderAPI interface {
	DueReminders(ctx context.Context) ([]models.Reminder, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	CompleteReminder(ctx context.Context, reminderID string) (*models.Reminder, error)
	SnoozeReminder(ctx context.Context, reminderID string, minutes int) (*models.Reminder, error)
	MarkNotified(ctx context.Context, reminderID string) error
}

// APIClient implements ReminderAPI over HTTP.
type APIClient struct {
	auth   AuthContext
	client *http.Client
}

func NewAPIClient(auth AuthContext) *APIClient {
	return &APIClient{
		auth:   auth,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.auth.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, payload)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
		}
	}
	return nil
}

// DueReminders fetches the caller's reminders whose fire time has passed.
func (c *APIClient) DueReminders(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := c.do(ctx, http.MethodGet, "/api/reminders/due", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListReminders fetches all of the caller's reminders.
func (c *APIClient) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := c.do(ctx, http.MethodGet, "/api/reminders", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CompleteReminder marks the reminder done on the server.
func (c *APIClient) CompleteReminder(ctx context.Context, reminderID string) (*models.Reminder, error) {
	var rem models.Reminder
	if err := c.do(ctx, http.MethodPut, "/api/reminders/"+reminderID+"/complete", nil, &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

// SnoozeReminder pushes the reminder's fire time forward.
func (c *APIClient) SnoozeReminder(ctx context.Context, reminderID string, minutes int) (*models.Reminder, error) {
	var rem models.Reminder
	body := models.SnoozeRequest{Minutes: minutes}
	if err := c.do(ctx, http.MethodPut, "/api/reminders/"+reminderID+"/snooze", body, &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

// MarkNotified records on the server that a notification was surfaced.
func (c *APIClient) MarkNotified(ctx context.Context, reminderID string) error {
	return c.do(ctx, http.MethodPut, "/api/reminders/"+reminderID+"/notified", nil, nil)
}
