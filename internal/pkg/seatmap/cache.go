package seatmap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/redis/go-redis/v9"
)

// formatAuto keys documents whose schema is left to detection.
const formatAuto = "auto"

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SeatMapCache stores converted documents keyed by the requested format and
// the SHA-256 of the source XML.
type SeatMapCache struct {
	redis RedisClient
}

func NewSeatMapCache(redis RedisClient) *SeatMapCache {
	return &SeatMapCache{
		redis: redis,
	}
}

func (c *SeatMapCache) GetLockKey(format, documentHash string) string {
	return fmt.Sprintf("seatmap:lock:%s:%s", keyFormat(format), documentHash)
}

func (c *SeatMapCache) GetCacheKey(format, documentHash string) string {
	return fmt.Sprintf("seatmap:cache:%s:%s", keyFormat(format), documentHash)
}

func (c *SeatMapCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *SeatMapCache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *SeatMapCache) SetSeatMap(ctx context.Context,
	key string,
	doc dto.SeatMapDocument,
	metadata dto.Metadata,
	expiration time.Duration,
) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal seat map: %w", err)
	}

	err = c.redis.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set seat map: %w", err)
	}

	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	err = c.redis.Set(ctx, key+":metadata", metadataBytes, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func (c *SeatMapCache) GetSeatMap(ctx context.Context, key string) (dto.SeatMapDocument, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return dto.SeatMapDocument{}, err
	}

	doc := dto.NewSeatMapDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return dto.SeatMapDocument{}, err
	}

	return doc, nil
}

func (c *SeatMapCache) GetMetadata(ctx context.Context, key string) (dto.Metadata, error) {
	metadataBytes, err := c.redis.Get(ctx, key+":metadata").Bytes()
	if err != nil {
		return dto.Metadata{}, err
	}

	var metadata dto.Metadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return dto.Metadata{}, err
	}

	return metadata, nil
}

func keyFormat(format string) string {
	if format == "" {
		return formatAuto
	}

	return format
}
