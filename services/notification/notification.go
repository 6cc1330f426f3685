package notification

import (
	"context"
	"fmt"
	"time"

	"verdant/models"
	"verdant/utils"

	"go.uber.org/zap"
)

// deliveryTimeout bounds a single channel send.
const deliveryTimeout = 10 * time.Second

// DeliverReminder composes the care notice and sends it by email, plus push
// when the user has a registered device token.
func (s *DefaultNotificationService) DeliverReminder(ctx context.Context, notice models.ReminderNotice) error {
	logger := utils.GetLogger()
	subject, html, text := buildReminderEmail(notice)

	sendCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()
	if err := s.Email.Send(sendCtx, notice.Email, subject, html, text); err != nil {
		return fmt.Errorf("failed to email reminder %s to %s: %w", notice.ReminderID, notice.Email, err)
	}

	if s.Push != nil && notice.FCMToken != "" {
		pushCtx, pushCancel := context.WithTimeout(ctx, deliveryTimeout)
		defer pushCancel()
		data := map[string]string{
			"reminderId": notice.ReminderID,
			"type":       string(notice.Type),
			"fireDate":   notice.FireDate.Format(time.RFC3339),
		}
		if err := s.Push.Send(pushCtx, notice.FCMToken, subject, pushBody(notice), data); err != nil {
			// Email already went out; a push failure is logged, not returned.
			logger.Warn("Push delivery failed",
				zap.String("reminderID", notice.ReminderID),
				zap.Error(err))
		}
	}
	return nil
}

// careVerb maps a reminder type to the phrase used in notification copy.
func careVerb(t models.ReminderType) string {
	switch t {
	case models.ReminderWatering:
		return "water"
	case models.ReminderFertilizing:
		return "fertilize"
	case models.ReminderPruning:
		return "prune"
	case models.ReminderRepotting:
		return "repot"
	default:
		return "check on"
	}
}

func pushBody(notice models.ReminderNotice) string {
	return fmt.Sprintf("Time to %s %s", careVerb(notice.Type), notice.PlantName)
}
