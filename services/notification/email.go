package notification

import (
	"context"
	"fmt"
	"html"

	"verdant/models"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers mail through the Resend API.
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

func NewResendEmailSender(apiKey, from string) *ResendEmailSender {
	return &ResendEmailSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single email.
func (s *ResendEmailSender) Send(ctx context.Context, to, subject, htmlBody, text string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    text,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// buildReminderEmail composes the subject, HTML, and plain-text bodies for a
// due-reminder notice.
func buildReminderEmail(notice models.ReminderNotice) (string, string, string) {
	verb := careVerb(notice.Type)
	plant := notice.PlantName
	if plant == "" {
		plant = "your plant"
	}

	subject := fmt.Sprintf("Time to %s %s", verb, plant)
	safePlant := html.EscapeString(plant)
	safeTitle := html.EscapeString(notice.Title)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 640px; margin: 0 auto; padding: 24px;">
  <h1 style="color: #2d5a3d; font-size: 24px;">Verdant</h1>
  <p style="font-size: 18px; margin-bottom: 4px;"><strong>%s</strong></p>
  <p style="color: #666; margin-top: 0;">It's time to %s <strong>%s</strong>.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">Verdant - your plant-care companion</p>
</body>
</html>`,
		safeTitle,
		verb,
		safePlant,
	)

	text := fmt.Sprintf(`%s

It's time to %s %s.

--
Verdant`,
		notice.Title,
		verb,
		plant,
	)

	return subject, htmlBody, text
}
