package chatconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client redis.Cmdable
}

// NewRedisStore returns a Store backed by Redis. Values carry no TTL: chat
// configuration lives until an admin overwrites it.
func NewRedisStore(client redis.Cmdable) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, kind Kind, chatID int64) (string, error) {
	val, err := s.client.Get(ctx, kind.Key(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, kind Kind, chatID int64, eventID string) error {
	if eventID == "" {
		return fmt.Errorf("refusing to store empty event id for chat %d", chatID)
	}
	return s.client.Set(ctx, kind.Key(chatID), eventID, 0).Err()
}
