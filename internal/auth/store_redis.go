// Copyright (c) 2026 Inkpress. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/inkpress/inkpress/internal/platform/constants"
)

// RedisAttemptStore implements [AttemptLimiter] using a per-login counter
// with a sliding expiry window.
type RedisAttemptStore struct {
	client *redis.Client
}

// NewRedisAttemptStore creates a Redis-backed [AttemptLimiter].
func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

// TooManyFailures reports whether the login has exhausted its failure budget
// for the current window. An absent counter means zero failures.
func (store *RedisAttemptStore) TooManyFailures(context context.Context, login string) (bool, error) {
	value, err := store.client.Get(context, attemptKey(login)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_signin_attempts_get_failed: %w", err)
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return false, fmt.Errorf("redis_signin_attempts_malformed: %w", err)
	}
	return count >= constants.SignInMaxAttempts, nil
}

// RecordFailure increments the login's failure counter. The window TTL is
// armed when the first failure creates the key and is left untouched after,
// so the lockout always clears a fixed time after the first failure.
func (store *RedisAttemptStore) RecordFailure(context context.Context, login string) error {
	key := attemptKey(login)

	count, err := store.client.Incr(context, key).Result()
	if err != nil {
		return fmt.Errorf("redis_signin_attempts_incr_failed: %w", err)
	}

	if count == 1 {
		if err := store.client.Expire(context, key, constants.SignInAttemptWindow).Err(); err != nil {
			return fmt.Errorf("redis_signin_attempts_expire_failed: %w", err)
		}
	}
	return nil
}

// Reset clears the login's failure counter after a successful sign-in.
func (store *RedisAttemptStore) Reset(context context.Context, login string) error {
	if err := store.client.Del(context, attemptKey(login)).Err(); err != nil {
		return fmt.Errorf("redis_signin_attempts_del_failed: %w", err)
	}
	return nil
}

// attemptKey builds the Redis key for a login's failure counter. The caller
// lowercases the login, so "User@x.com" and "user@x.com" share one counter.
func attemptKey(login string) string {
	return constants.RedisPrefixSignInAttempts + login
}
