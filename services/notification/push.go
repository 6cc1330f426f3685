package notification

import (
	"context"
	"fmt"

	"verdant/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMPushSender delivers push notifications through Firebase Cloud Messaging.
type FCMPushSender struct{}

// Send pushes a message to the given device token.
func (FCMPushSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
