package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	subject string
	data    []byte
}

func (c *capturePublisher) Publish(subject string, data []byte) error {
	c.subject, c.data = subject, data
	return nil
}

func TestBookingConfirmedPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	ev := NewBookingEvents(pub)
	ev.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	err := ev.BookingConfirmed(context.Background(), &models.ConfirmedBooking{ID: "b-1", BookingTime: "19:00"})
	require.NoError(t, err)

	assert.Equal(t, SubjectBookingConfirmed, pub.subject)
	var got BookingEvent
	require.NoError(t, json.Unmarshal(pub.data, &got))
	assert.Equal(t, "b-1", got.Booking.ID)
	assert.Equal(t, SubjectBookingConfirmed, got.Type)
	assert.True(t, got.OccurredAt.Equal(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)))
}
