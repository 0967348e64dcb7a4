package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/redis/go-redis/v9"
)

const questionListKey = "sketchquiz:questions"

// RedisQuestionCache keeps the public question list as one JSON value.
type RedisQuestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisQuestionCache(rdb *redis.Client, ttl time.Duration) *RedisQuestionCache {
	return &RedisQuestionCache{rdb: rdb, ttl: ttl}
}

// GetQuestions reports ok=false on a cache miss.
func (c *RedisQuestionCache) GetQuestions(ctx context.Context) ([]dto.QuestionSummaryDTO, bool, error) {
	val, err := c.rdb.Get(ctx, questionListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", questionListKey, err)
	}
	var questions []dto.QuestionSummaryDTO
	if err := json.Unmarshal(val, &questions); err != nil {
		return nil, false, fmt.Errorf("decode cached questions: %w", err)
	}
	return questions, true, nil
}

func (c *RedisQuestionCache) SetQuestions(ctx context.Context, questions []dto.QuestionSummaryDTO) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	return c.rdb.Set(ctx, questionListKey, data, c.ttl).Err()
}

func (c *RedisQuestionCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, questionListKey).Err()
}

func (c *RedisQuestionCache) Close() error {
	return c.rdb.Close()
}
