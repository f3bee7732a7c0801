package liveness

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisPublisher stores the heartbeat under a key that expires after ttl,
// so the key disappearing means the process stopped beating.
type RedisPublisher struct {
	client rueidis.Client
	key    string
	ttl    time.Duration
}

func NewRedisPublisher(client rueidis.Client, key string, ttl time.Duration) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, lastSeen string) error {
	cmd := r.client.B().Set().Key(r.key).Value(lastSeen).ExSeconds(int64(r.ttl / time.Second)).Build()
	return r.client.Do(ctx, cmd).Error()
}

// LastSeen reads the mirrored heartbeat back. found is false once the key
// has expired.
func (r *RedisPublisher) LastSeen(ctx context.Context) (string, bool, error) {
	cmd := r.client.B().Get().Key(r.key).Build()
	value, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
