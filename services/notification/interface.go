package notification

import (
	"context"
	"fmt"

	"verdant/models"
)

// NotificationService defines how due-reminder notices reach the user.
type NotificationService interface {
	// DeliverReminder sends the notice over every channel the user has
	// configured. A push failure does not fail the delivery if the email
	// went out.
	DeliverReminder(ctx context.Context, notice models.ReminderNotice) error
}

// EmailSender sends a single email. Failures are non-fatal to batch callers.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// PushSender sends a single push message to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Email EmailSender
	Push  PushSender
}

func NewDefaultNotificationService(email EmailSender, push PushSender) (*DefaultNotificationService, error) {
	if email == nil {
		return nil, fmt.Errorf("notification service initialization error: email sender is nil")
	}
	return &DefaultNotificationService{Email: email, Push: push}, nil
}
