package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionRevokedPrefix = "absensi:session:revoked:"

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// RevokeSession records a logged-out session token id until the token would
// have expired on its own.
func (r *Redis) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, sessionRevokedPrefix+jti, "1", ttl).Err()
}

// SessionRevoked reports whether a session token id has been revoked. A redis
// failure counts as not revoked so that auth does not hard-depend on redis.
func (r *Redis) SessionRevoked(ctx context.Context, jti string) bool {
	if r == nil || r.Client == nil {
		return false
	}
	n, err := r.Client.Exists(ctx, sessionRevokedPrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
