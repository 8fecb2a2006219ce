package database

import (
	"context"

	"github.com/fitcenter/backend/internal/logger"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// InitRedis initializes Redis client with config. It returns nil when redis
// is disabled or unreachable; rate limiting and cross-process events are
// then skipped.
func InitRedis(ctx context.Context, log *logger.Logger) *redis.Client {
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	if !viper.GetBool("redis.enabled") {
		log.Info(ctx, "redis disabled")
		return nil
	}

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Zerolog(ctx).Warn().Err(err).Str("addr", addr).Msg("redis connection failed, continuing without redis")
		rdb.Close()
		return nil
	}

	log.Zerolog(ctx).Info().Str("addr", addr).Msg("redis connection established")
	return rdb
}
