// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/printzz/printzz/internal/logger"
)

const (
	redisKeyPrefix    = "printzz:lock:"
	redisRetryBackoff = 25 * time.Millisecond
)

// unlockScript deletes the key only while it still carries our token, so an
// expired lock that was taken over is never released by its former holder.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refreshScript extends the key's expiry while it still carries our token.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker is a lock shared by every server replica using one Redis.
// Locks expire after ttl so a crashed holder cannot block a printer forever;
// a live holder refreshes its lock every ttl/3 until it unlocks, so a lock
// held across a long download does not expire under it. RLock is exclusive.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisLocker parses redisURL, pings the server and returns the locker.
func NewRedisLocker(ctx context.Context, redisURL string, ttl time.Duration, log *logger.Logger) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("func", "NewRedisLocker").Str("addr", opts.Addr).Msg("failed to connect to Redis")
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info().Str("addr", opts.Addr).Msg("connected to Redis lock server")

	return NewRedisLockerFromClient(client, ttl, log), nil
}

// NewRedisLockerFromClient wraps an existing client.
func NewRedisLockerFromClient(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, logger: log}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := redisKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("error acquiring lock %s: %w", key, err)
		}
		if ok {
			refreshCtx, stop := context.WithCancel(context.Background())
			go keepAlive(refreshCtx, l.client, redisKey, token, l.ttl, l.logger)
			return l.unlockFunc(redisKey, token, stop), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
		case <-time.After(redisRetryBackoff):
		}
	}
}

func (l *RedisLocker) RLock(ctx context.Context, key string) (Unlock, error) {
	return l.Lock(ctx, key)
}

func (l *RedisLocker) unlockFunc(redisKey, token string, stopRefresh context.CancelFunc) Unlock {
	var once sync.Once
	return func() {
		once.Do(func() {
			stopRefresh()
			// the caller's context may already be cancelled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := unlockScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Err(err).Str("func", "*RedisLocker.Unlock").Str("key", redisKey).Msg("error releasing lock")
			}
		})
	}
}

// keepAlive pushes the expiry of redisKey back to ttl every ttl/3 until ctx
// is cancelled or the key no longer carries token.
func keepAlive(ctx context.Context, s redis.Scripter, redisKey, token string, ttl time.Duration, log *logger.Logger) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(ttl/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		refreshed, err := refreshScript.Run(ctx, s, []string{redisKey}, token, ttl.Milliseconds()).Int64()
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			// the next tick retries while the key is still alive
			log.Err(err).Str("func", "keepAlive").Str("key", redisKey).Msg("error refreshing lock")
		case refreshed == 0:
			log.Warn().Str("key", redisKey).Msg("lock expired while held")
			return
		}
	}
}

// Close closes the Redis client.
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
