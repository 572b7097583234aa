package notification

import (
	"context"

	"dinevoice/models"
)

type SMSSender interface {
	SendSMS(ctx context.Context, to, text string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// PushSender alerts restaurant staff about new bookings.
type PushSender interface {
	SendStaffPush(ctx context.Context, title, body string, data map[string]string) error
}

// NotificationService delivers booking confirmations on every configured
// channel. Failures are logged and counted but never reach the guest.
type NotificationService interface {
	NotifyBookingConfirmed(ctx context.Context, p models.NotificationPayload) error
}
