// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Sessions are volatile by nature: Redis TTLs give us expiry for free, and a
// lost session store only forces operators to log in again.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func (repository *RedisSessionRepository) Set(context context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth session: marshal: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(tokenHash), raw, ttl).Err(); err != nil {
		return fmt.Errorf("auth session: set: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (*Session, error) {
	raw, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("auth session: get: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("auth session: corrupt payload: %w", err)
	}
	return session, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("auth session: delete: %w", err)
	}
	return nil
}
