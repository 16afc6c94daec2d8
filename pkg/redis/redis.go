package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/beautique/beautique-backend/config"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "beautique:token_blacklist:"

var client *redis.Client

// Init connects to Redis. The storefront runs fine without it; only admin
// token revocation depends on this connection.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established", nil)
	return nil
}

// GetClient returns the Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection.
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Closing Redis connection", nil)
	return client.Close()
}

// Available reports whether a Redis connection was established. Token
// revocation degrades gracefully when Redis is not configured: logged-out
// tokens simply remain valid until their natural expiry.
func Available() bool {
	return client != nil
}

// BlacklistToken revokes an admin token. The entry expires with the token
// itself, so the blacklist never grows beyond the set of live tokens.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if err := client.Set(ctx, blacklistKeyPrefix+token, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}

	logger.Debug("Token blacklisted", map[string]interface{}{
		"expiry": expiry.String(),
	})
	return nil
}

// IsTokenBlacklisted reports whether a token has been revoked.
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	err := client.Get(ctx, blacklistKeyPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return true, nil
}
