package tasks

import (
	"context"
	"encoding/json"
	"time"

	"dinevoice/models"
	"dinevoice/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingNotify = "booking:notify"

func NewBookingNotifyTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.TaskID("notify:" + payload.BookingID),
	}
	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher hands confirmation notifications to the asynq worker.
type QueueDispatcher struct {
	client Enqueuer
	logger *zap.Logger
}

func NewQueueDispatcher(client Enqueuer, logger *zap.Logger) *QueueDispatcher {
	return &QueueDispatcher{client: client, logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, b *models.ConfirmedBooking) {
	task, opts, err := NewBookingNotifyTask(notification.PayloadFor(b))
	if err != nil {
		d.logger.Error("Failed to build notification task", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		d.logger.Warn("Failed to enqueue notification task", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	d.logger.Debug("Notification task queued", zap.String("bookingId", b.ID), zap.String("taskId", info.ID))
}
