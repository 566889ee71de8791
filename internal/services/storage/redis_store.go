package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const previewKeyPrefix = "img_preview:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func previewKey(id string) string {
	return previewKeyPrefix + id
}

func (r *RedisStore) Put(ctx context.Context, id string, preview *Preview, ttl time.Duration) error {
	key := previewKey(id)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"filename", preview.Filename,
			"content_type", preview.ContentType,
			"data", preview.Data,
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Preview, error) {
	fields, err := r.client.HGetAll(ctx, previewKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	data, ok := fields["data"]
	if !ok {
		return nil, ErrPreviewNotFound
	}

	return &Preview{
		Filename:    fields["filename"],
		ContentType: fields["content_type"],
		Data:        []byte(data),
	}, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, previewKey(id)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Name() string {
	return "redis"
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
