package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinevoice/models"
	"dinevoice/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService fans a confirmation out to SMS, email and the
// staff push topic. Any of the senders may be nil.
type DefaultNotificationService struct {
	sms    SMSSender
	email  EmailSender
	push   PushSender
	logger *zap.Logger
}

func NewDefaultNotificationService(sms SMSSender, email EmailSender, push PushSender, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{sms: sms, email: email, push: push, logger: logger}
}

// NotifyBookingConfirmed returns an error only when every attempted channel
// failed, so a queue retry never re-sends a message that already went out.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, p models.NotificationPayload) error {
	attempted, failed := 0, 0
	record := func(channel string, err error) {
		switch {
		case err == nil:
			attempted++
			utils.IncNotification(channel, "sent")
		case errors.Is(err, ErrChannelDisabled):
			utils.IncNotification(channel, "skipped")
		default:
			attempted++
			failed++
			utils.IncNotification(channel, "failed")
			s.logger.Warn("Notification failed",
				zap.String("channel", channel),
				zap.String("bookingId", p.BookingID),
				zap.Error(err))
		}
	}

	if p.Phone != "" && s.sms != nil {
		record("sms", s.sms.SendSMS(ctx, p.Phone, p.Body))
	}
	if p.Email != "" && s.email != nil {
		record("email", s.email.SendEmail(ctx, p.Email, p.Subject, p.Body))
	}
	if s.push != nil {
		record("push", s.push.SendStaffPush(ctx, "New booking", p.StaffNote, map[string]string{"bookingId": p.BookingID}))
	}

	if attempted > 0 && failed == attempted {
		return fmt.Errorf("all %d notification channels failed for booking %s", attempted, p.BookingID)
	}
	return nil
}

// InlineDispatcher sends notifications on a background goroutine. The
// console client uses it where no queue is available.
type InlineDispatcher struct {
	svc     NotificationService
	logger  *zap.Logger
	timeout time.Duration
}

func NewInlineDispatcher(svc NotificationService, logger *zap.Logger) *InlineDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineDispatcher{svc: svc, logger: logger, timeout: 30 * time.Second}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, b *models.ConfirmedBooking) {
	p := PayloadFor(b)
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := d.svc.NotifyBookingConfirmed(ctx, p); err != nil {
			d.logger.Warn("Booking notifications failed", zap.String("bookingId", p.BookingID), zap.Error(err))
		}
	}()
}
