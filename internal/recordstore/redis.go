package recordstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "records:"

// RedisStore keeps each collection as one JSON array under records:<collection>.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []json.RawMessage{}, nil
		}
		return nil, err
	}
	return decodeCollection(data)
}

func (r *RedisStore) WriteAll(ctx context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+collection, payload, 0).Err()
}
