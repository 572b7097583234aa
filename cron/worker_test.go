package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinevoice/models"
	"dinevoice/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	got []models.NotificationPayload
	err error
}

func (f *fakeNotifier) NotifyBookingConfirmed(_ context.Context, p models.NotificationPayload) error {
	f.got = append(f.got, p)
	return f.err
}

func TestHandleNotifyTask(t *testing.T) {
	n := &fakeNotifier{}
	h := handleNotifyTask(n, zap.NewNop())

	task, _, err := tasks.NewBookingNotifyTask(models.NotificationPayload{BookingID: "b-1", Body: "hi"})
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))
	require.Len(t, n.got, 1)
	assert.Equal(t, "b-1", n.got[0].BookingID)

	n.err = errors.New("all channels failed")
	assert.Error(t, h.ProcessTask(context.Background(), task))

	bad := asynq.NewTask(tasks.TypeBookingNotify, []byte("{"))
	assert.ErrorIs(t, h.ProcessTask(context.Background(), bad), asynq.SkipRetry)
}

type countingReaper struct{ idle time.Duration }

func (c *countingReaper) ReapIdle(idle time.Duration) int {
	c.idle = idle
	return 0
}

func TestStartSessionReaper(t *testing.T) {
	c, err := StartSessionReaper(&countingReaper{}, 10*time.Minute, zap.NewNop())
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
