package ratelimit

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

const (
	// Per-client budget for the public access-increment mutation.
	accessRate  = 5.0
	accessBurst = 20
)

// AccessLimiter throttles the storefront access counter per client address.
// Without a redis client it allows everything, so single-node deployments
// keep working without redis.
type AccessLimiter struct {
	bucket *TokenBucket
}

func NewAccessLimiter(client *redis.Client) *AccessLimiter {
	return &AccessLimiter{bucket: NewTokenBucket(client)}
}

func (l *AccessLimiter) Allow(ctx context.Context, clientIP string) bool {
	if l == nil || l.bucket == nil || clientIP == "" {
		return true
	}
	res, err := l.bucket.Allow(ctx, "mall:access:"+clientIP, accessRate, accessBurst)
	if err != nil {
		// Fail open: the counter is best-effort telemetry.
		return true
	}
	return res.Allowed
}
