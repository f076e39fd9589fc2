package session

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "editsession:"

// RedisRegistry keeps editing-session presence in Redis with TTL.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry builds a Redis-backed session registry.
func NewRedisRegistry(addr, password string, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Touch writes a sessionID -> editorID mapping, resetting the TTL.
func (r *RedisRegistry) Touch(ctx context.Context, sessionID, editorID string) error {
	return r.client.Set(ctx, keyPrefix+sessionID, editorID, r.ttl).Err()
}

// Active scans for unexpired session entries.
func (r *RedisRegistry) Active(ctx context.Context) ([]string, error) {
	var sessions []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		sessions = append(sessions, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// End removes a session entry.
func (r *RedisRegistry) End(ctx context.Context, sessionID string) error {
	err := r.client.Del(ctx, keyPrefix+sessionID).Err()
	if err != nil && err != redis.Nil {
		return err
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
