// internal/infrastructure/persistence/redis.go
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// RedisRepository persists a session snapshot as a JSON blob under a single
// namespaced key with a sliding expiration.
type RedisRepository struct {
	client    *redis.Client
	namespace string
	sessionID string
	ttl       time.Duration
}

// NewRedisRepository creates a snapshot repository for one session
func NewRedisRepository(client *redis.Client, namespace, sessionID string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client:    client,
		namespace: namespace,
		sessionID: sessionID,
		ttl:       ttl,
	}
}

func (r *RedisRepository) key() string {
	return fmt.Sprintf("%s:session:%s", r.namespace, r.sessionID)
}

// Load retrieves the persisted snapshot, nil when none exists
func (r *RedisRepository) Load(ctx context.Context) (*session.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		// A corrupt blob is dropped rather than wedging the session
		return nil, nil
	}
	return &snap, nil
}

// Save writes the snapshot, refreshing the expiration
func (r *RedisRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
