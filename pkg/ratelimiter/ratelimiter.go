package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitError is returned when a user repeats an action inside its
// cooldown window. RetryAfter carries the remaining lock TTL.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Limiter throttles per-user actions with a Redis SetNX lock. A nil client
// disables limiting entirely (e.g. in tests or single-node dev setups).
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Allow acquires the lock for (userID, action). It returns a *RateLimitError
// when the previous action is still inside its window.
func (l *Limiter) Allow(ctx context.Context, userID uint, action string, window time.Duration) error {
	if l == nil || l.rdb == nil || window <= 0 {
		return nil
	}

	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)

	wasSet, err := l.rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	if !wasSet {
		ttl, _ := l.rdb.TTL(ctx, key).Result()
		return &RateLimitError{
			Message:    fmt.Sprintf("please wait before repeating this action (%s)", action),
			RetryAfter: ttl,
		}
	}

	return nil
}

// Clear releases the lock early, e.g. when the guarded write failed.
func (l *Limiter) Clear(ctx context.Context, userID uint, action string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
	_, err := l.rdb.Del(ctx, key).Result()
	return err
}
