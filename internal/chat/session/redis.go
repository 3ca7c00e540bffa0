package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"food-assistant/internal/models"
)

const DefaultKeyPrefix = "chat:session:"

// RedisStore keeps conversation state as JSON documents, one key per user.
// A zero ttl keeps keys until they are overwritten.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (models.ConversationState, error) {
	var state models.ConversationState
	val, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := json.Unmarshal(val, &state); err != nil {
		return models.ConversationState{}, fmt.Errorf("%w: %v", ErrStateDecode, err)
	}
	return state, nil
}

func (s *RedisStore) Set(ctx context.Context, userID string, state models.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateDecode, err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}
