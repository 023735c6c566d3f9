package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/ragmesh/core"
)

// keyPrefix namespaces conversation history keys in the shared database.
const keyPrefix = "chat:"

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	// TTL is the sliding inactivity window applied on every write.
	TTL time.Duration
}

// RedisStore persists session histories as Redis lists. Each message is one
// JSON list element; RPUSH preserves chronological order and EXPIRE after
// every write implements the sliding TTL server-side, so expiry holds even
// across process restarts.
type RedisStore struct {
	client *redis.Client
	opts   RedisOptions
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client, optFns ...func(o *RedisOptions)) *RedisStore {
	opts := RedisOptions{
		TTL: DefaultTTL,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RedisStore{client: client, opts: opts}
}

// Append serializes the message and pushes it onto the session's list.
func (s *RedisStore) Append(ctx context.Context, sessionID string, msg core.Message) error {
	if sessionID == "" {
		return core.ErrMissingSessionID
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	key := sessionKey(sessionID)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if s.opts.TTL > 0 {
		if err := s.client.Expire(ctx, key, s.opts.TTL).Err(); err != nil {
			return fmt.Errorf("failed to refresh ttl: %w", err)
		}
	}
	return nil
}

// History reads the full session list in order. A missing key yields an
// empty history.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]core.Message, error) {
	if sessionID == "" {
		return nil, core.ErrMissingSessionID
	}
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	messages := make([]core.Message, 0, len(raw))
	for _, item := range raw {
		var msg core.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Compile-time check that RedisStore implements MemoryStore.
var _ core.MemoryStore = (*RedisStore)(nil)
