package conversation

import (
	"context"
	"encoding/json"
	"time"

	"dinevoice/models"

	"github.com/go-redis/redis/v8"
)

const draftPrefix = "conv:draft:"

// DraftStore keeps the latest snapshot of each conversation.
type DraftStore interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationSnapshot, error)
	Set(ctx context.Context, snap *models.ConversationSnapshot) error
	Clear(ctx context.Context, sessionID string) error
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

// Get returns nil without error when the session has no snapshot.
func (s *RedisDraftStore) Get(ctx context.Context, sessionID string) (*models.ConversationSnapshot, error) {
	data, err := s.client.Get(ctx, draftPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.ConversationSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisDraftStore) Set(ctx context.Context, snap *models.ConversationSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftPrefix+snap.SessionID, b, s.ttl).Err()
}

func (s *RedisDraftStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, draftPrefix+sessionID).Err()
}
