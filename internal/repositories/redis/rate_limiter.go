package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dlcastillo/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisRepo struct {
	client *redis.Client
	config *config.Config
}

func NewRedisRepo(cfg *config.Config) (*RedisRepo, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepo{client: client, config: cfg}, nil
}

// NewWithClient wires an existing client; used by tests.
func NewWithClient(client *redis.Client, cfg *config.Config) *RedisRepo {
	return &RedisRepo{client: client, config: cfg}
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}

// Client exposes the underlying connection for consumers that share it,
// like the catalog cache.
func (r *RedisRepo) Client() *redis.Client {
	return r.client
}

// CheckLoginRateLimit counts login attempts in a sliding window per
// username. Returns whether the attempt is allowed, the attempts left, and
// how many seconds to wait when blocked.
func (r *RedisRepo) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {

	key := fmt.Sprintf("login_attempts:%s", username)

	now := time.Now().Unix()

	// Attempts before this point fall outside the window and stop counting.
	windowStart := now - int64(r.config.RateConfig.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.config.RateConfig.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()
	remaining := r.config.RateConfig.MaxAttempts - attempts

	if attempts >= r.config.RateConfig.MaxAttempts {

		oldest, err := r.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, 0, err
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, 0, 0, err
		}

		retryAfter := int64(r.config.RateConfig.WindowSize.Seconds()) - (now - oldestTime)

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil
}
