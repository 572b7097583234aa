package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPush sends staff alerts to a Firebase Cloud Messaging topic.
type FCMPush struct {
	client *messaging.Client
	topic  string
	logger *zap.Logger
}

func NewFCMPush(client *messaging.Client, topic string, logger *zap.Logger) *FCMPush {
	return &FCMPush{client: client, topic: topic, logger: logger}
}

func (p *FCMPush) SendStaffPush(ctx context.Context, title, body string, data map[string]string) error {
	if p.client == nil || p.topic == "" {
		return ErrChannelDisabled
	}
	msg := &messaging.Message{
		Topic: p.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
	}
	id, err := p.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("fcm: send to topic %s: %w", p.topic, err)
	}
	p.logger.Debug("Staff push sent", zap.String("messageId", id))
	return nil
}
