package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"retailpulse/internal/models"
)

const keyPrefix = "retailpulse"

type CacheService interface {
	// Metrics snapshots, stored without expiry. A miss is (nil, nil).
	GetMetrics(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error)
	SetMetrics(ctx context.Context, snapshot *models.MetricsSnapshot) error
	InvalidateMetrics(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisCacheService(addr, password string, db int, logger zerolog.Logger) CacheService {
	// accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	logger = logger.With().Str("component", "cache").Logger()
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	} else {
		logger.Debug().Str("addr", parsedAddr).Msg("redis connection established")
	}

	return &redisCacheService{client: client, logger: logger}
}

func metricsKey(periodKey string) string {
	return fmt.Sprintf("%s:metrics:%s", keyPrefix, periodKey)
}

func rateLimitKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}

func (r *redisCacheService) GetMetrics(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error) {
	data, err := r.client.Get(ctx, metricsKey(periodKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

// decodeSnapshot treats snapshots written by another schema version as a miss.
func decodeSnapshot(data []byte) (*models.MetricsSnapshot, error) {
	var snap models.MetricsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode metrics snapshot: %w", err)
	}
	if snap.Version != models.MetricsSnapshotVersion {
		return nil, nil
	}
	return &snap, nil
}

func (r *redisCacheService) SetMetrics(ctx context.Context, snapshot *models.MetricsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, metricsKey(snapshot.PeriodKey), data, 0).Err()
}

func (r *redisCacheService) InvalidateMetrics(ctx context.Context) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, metricsKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := rateLimitKey(key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Set expiry on first request
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			r.logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to set rate limit expiry")
		}
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
