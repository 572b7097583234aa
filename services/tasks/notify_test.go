package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dinevoice/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t-1"}, nil
}

func TestQueueDispatcherEnqueuesPayload(t *testing.T) {
	q := &fakeEnqueuer{}
	d := NewQueueDispatcher(q, zap.NewNop())

	d.Dispatch(context.Background(), &models.ConfirmedBooking{
		ID: "b-1", CustomerName: "Asha", NumberOfGuests: 2,
		BookingDate: "2024-05-11", BookingTime: "19:00",
		SeatingPreference: models.SeatingIndoor, Locale: "en-IN", ContactPhone: "+15550001111",
	})

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeBookingNotify, q.tasks[0].Type())
	var p models.NotificationPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, "b-1", p.BookingID)
	assert.Equal(t, "+15550001111", p.Phone)
}

func TestQueueDispatcherSwallowsErrors(t *testing.T) {
	d := NewQueueDispatcher(&fakeEnqueuer{err: errors.New("redis down")}, zap.NewNop())
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), &models.ConfirmedBooking{ID: "b-2"})
	})
}
