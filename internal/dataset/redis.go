package dataset

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

// DefaultRedisKey is where the slate ingester publishes the dataset
const DefaultRedisKey = "dfs:slates"

// StringGetter is the slice of the Redis client the source needs
type StringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads the dataset from a single Redis string key
type RedisSource struct {
	client StringGetter
	key    string
}

// NewRedisSource creates a Redis-backed source
func NewRedisSource(client StringGetter, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{
		client: client,
		key:    key,
	}
}

// Name identifies the source in logs
func (s *RedisSource) Name() string {
	return "redis:" + s.key
}

// Load fetches the JSON document stored under the key
func (s *RedisSource) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, eris.Wrapf(ErrNotFound, "key %s", s.key)
		}
		return nil, eris.Wrapf(err, "get %s", s.key)
	}
	return data, nil
}
