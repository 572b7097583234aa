package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	err   error
	calls int
	to    string
}

func (f *fakeSender) SendSMS(_ context.Context, to, _ string) error {
	f.calls++
	f.to = to
	return f.err
}

func (f *fakeSender) SendEmail(_ context.Context, to, _, _ string) error {
	f.calls++
	f.to = to
	return f.err
}

func (f *fakeSender) SendStaffPush(context.Context, string, string, map[string]string) error {
	f.calls++
	return f.err
}

func sampleBooking() *models.ConfirmedBooking {
	return &models.ConfirmedBooking{
		ID:                "b-1",
		CustomerName:      "Asha",
		NumberOfGuests:    2,
		BookingDate:       "2024-05-11",
		BookingTime:       "19:00",
		SeatingPreference: models.SeatingOutdoor,
		SpecialRequests:   "window seat",
		Locale:            "en-IN",
		ContactPhone:      "+15550001111",
		ContactEmail:      "asha@example.com",
		Status:            models.StatusConfirmed,
		CreatedAt:         time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestPayloadFor(t *testing.T) {
	p := PayloadFor(sampleBooking())
	assert.Equal(t, "Hi Asha, your table for 2 on 2024-05-11 at 19:00 is confirmed (seating: outdoor). Booking ID: b-1.", p.Body)
	assert.Equal(t, "+15550001111", p.Phone)
	assert.Contains(t, p.StaffNote, "requests: window seat")

	hi := sampleBooking()
	hi.Locale = "hi-IN"
	assert.Contains(t, PayloadFor(hi).Body, "बाहर")
}

func TestNotifyFansOutToEveryChannel(t *testing.T) {
	sms, mail, push := &fakeSender{}, &fakeSender{}, &fakeSender{}
	svc := NewDefaultNotificationService(sms, mail, push, zap.NewNop())

	require.NoError(t, svc.NotifyBookingConfirmed(context.Background(), PayloadFor(sampleBooking())))
	assert.Equal(t, "+15550001111", sms.to)
	assert.Equal(t, "asha@example.com", mail.to)
	assert.Equal(t, 1, push.calls)
}

func TestNotifyErrorsOnlyWhenAllAttemptsFail(t *testing.T) {
	boom := errors.New("boom")

	partial := NewDefaultNotificationService(&fakeSender{err: boom}, &fakeSender{}, nil, zap.NewNop())
	assert.NoError(t, partial.NotifyBookingConfirmed(context.Background(), PayloadFor(sampleBooking())))

	all := NewDefaultNotificationService(&fakeSender{err: boom}, &fakeSender{err: boom}, &fakeSender{err: ErrChannelDisabled}, zap.NewNop())
	assert.Error(t, all.NotifyBookingConfirmed(context.Background(), PayloadFor(sampleBooking())))

	none := NewDefaultNotificationService(&fakeSender{err: ErrChannelDisabled}, nil, nil, zap.NewNop())
	assert.NoError(t, none.NotifyBookingConfirmed(context.Background(), PayloadFor(sampleBooking())))
}

func TestFallbackMailerOrder(t *testing.T) {
	first := &fakeSender{err: errors.New("smtp down")}
	skipped := &fakeSender{err: ErrChannelDisabled}
	second := &fakeSender{}
	m := NewFallbackMailer(zap.NewNop(), first, skipped, second)

	require.NoError(t, m.SendEmail(context.Background(), "a@example.com", "s", "b"))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)

	allBad := NewFallbackMailer(zap.NewNop(), &fakeSender{err: errors.New("x")}, &fakeSender{err: errors.New("y")})
	assert.Error(t, allBad.SendEmail(context.Background(), "a@example.com", "s", "b"))

	unconfigured := NewFallbackMailer(zap.NewNop(), NewSMTPMailer("", 25, "", "", "", "", false), NewSendGridMailer("", "", ""))
	assert.ErrorIs(t, unconfigured.SendEmail(context.Background(), "a@example.com", "s", "b"), ErrChannelDisabled)
}

func TestLogMailerIsLastHop(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewFallbackMailer(zap.NewNop(),
		&fakeSender{err: errors.New("smtp down")},
		NewSendGridMailer("", "", ""),
		NewLogMailer(true, zap.New(core)),
	)
	require.NoError(t, m.SendEmail(context.Background(), "a@example.com", "Table booked", "See you at 19:00"))

	entries := logs.FilterMessage("Email captured by development mailer").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@example.com", entries[0].ContextMap()["to"])

	off := NewLogMailer(false, zap.NewNop())
	assert.ErrorIs(t, off.SendEmail(context.Background(), "a@example.com", "s", "b"), ErrChannelDisabled)
}

func TestTwilioSMS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/AC123/Messages.json", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("To") == "+10000000000" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":21211,"message":"invalid number"}`))
			return
		}
		assert.Equal(t, "+15559998888", r.PostForm.Get("From"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sms := NewTwilioSMS("AC123", "secret", "+15559998888", zap.NewNop())
	sms.baseURL = srv.URL

	require.NoError(t, sms.SendSMS(context.Background(), "+15550001111", "hello"))
	err := sms.SendSMS(context.Background(), "+10000000000", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "21211")

	assert.ErrorIs(t, NewTwilioSMS("", "", "", zap.NewNop()).SendSMS(context.Background(), "+1", "x"), ErrChannelDisabled)
}
