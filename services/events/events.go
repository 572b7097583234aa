package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dinevoice/models"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const SubjectBookingConfirmed = "bookings.confirmed"

// BookingEvent is the message published for every confirmed booking.
type BookingEvent struct {
	Type       string                  `json:"type"`
	Booking    models.ConfirmedBooking `json:"booking"`
	OccurredAt time.Time               `json:"occurredAt"`
}

type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSBus is a thin wrapper over a NATS connection.
type NATSBus struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSBus(url string, logger *zap.Logger) (*NATSBus, error) {
	nc, err := nats.Connect(url, nats.Name("dinevoice"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Connected to NATS", zap.String("url", url))
	return &NATSBus{conn: nc, logger: logger}, nil
}

func (b *NATSBus) Publish(subject string, data []byte) error {
	return b.conn.Publish(subject, data)
}

// Subscribe delivers decoded booking events until ctx is cancelled.
func (b *NATSBus) Subscribe(ctx context.Context, handler func(BookingEvent)) error {
	sub, err := b.conn.Subscribe(SubjectBookingConfirmed, func(msg *nats.Msg) {
		var ev BookingEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.logger.Warn("Dropping malformed booking event", zap.Error(err))
			return
		}
		handler(ev)
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return sub.Unsubscribe()
}

func (b *NATSBus) Close() error {
	b.conn.Close()
	return nil
}

// BookingEvents publishes confirmation events.
type BookingEvents struct {
	pub Publisher
	now func() time.Time
}

func NewBookingEvents(pub Publisher) *BookingEvents {
	return &BookingEvents{pub: pub, now: time.Now}
}

func (e *BookingEvents) BookingConfirmed(_ context.Context, b *models.ConfirmedBooking) error {
	data, err := json.Marshal(BookingEvent{Type: SubjectBookingConfirmed, Booking: *b, OccurredAt: e.now().UTC()})
	if err != nil {
		return err
	}
	return e.pub.Publish(SubjectBookingConfirmed, data)
}
