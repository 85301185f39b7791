package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"phCV/internal/cv"
)

const redisKeyPrefix = "cv_cache:"

// RedisStore 用 Redis 实现缓存契约，TTL 由 Redis 过期机制承担。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 构造 Redis 缓存；ttl<=0 时使用 DefaultTTL。
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, data cv.CVData) (string, error) {
	raw, err := cv.Encode(data)
	if err != nil {
		return "", fmt.Errorf("encode cv data: %w", err)
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, redisKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store cv cache entry: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (cv.CVData, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return cv.CVData{}, ErrNotFound
	}
	if err != nil {
		return cv.CVData{}, fmt.Errorf("fetch cv cache entry: %w", err)
	}
	// 缓存里的脏数据回落到种子文档，而不是让导出失败。
	return cv.Decode(raw), nil
}
