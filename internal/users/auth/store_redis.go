// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/usergate/internal/platform/apperr"
	"github.com/taibuivan/usergate/internal/platform/constants"
)

// maxUpdateAttempts bounds optimistic retries when a concurrent writer
// touches the same key between WATCH and EXEC.
const maxUpdateAttempts = 3

// RedisUserRepository implements UserRepository using one JSON document per key.
type RedisUserRepository struct {
	client redis.UniversalClient
}

// NewRedisUserRepository creates a new Redis-backed UserRepository.
func NewRedisUserRepository(client redis.UniversalClient) *RedisUserRepository {
	return &RedisUserRepository{client: client}
}

func userKey(username string) string {
	return constants.RedisPrefixUser + username
}

/*
FindByUsername loads and decodes the user document.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - error: ErrUserNotFound or store failures
*/
func (repository *RedisUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	payload, err := repository.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.StoreUnavailable(fmt.Errorf("redis_user_get_failed: %w", err))
	}

	return decodeUser(payload)
}

/*
Create stores the user document only if the key does not exist yet.

Returns:
  - error: ErrUserExists or store failures
*/
func (repository *RedisUserRepository) Create(ctx context.Context, user *User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return apperr.Internal(fmt.Errorf("redis_user_encode_failed: %w", err))
	}

	created, err := repository.client.SetNX(ctx, userKey(user.Username), payload, 0).Result()
	if err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("redis_user_create_failed: %w", err))
	}
	if !created {
		return ErrUserExists
	}

	return nil
}

/*
UpdateFields rewrites the document inside a WATCH/MULTI transaction.

Description: If the key changes or disappears between the read and the write,
the transaction is replayed; a key deleted in the meantime yields ErrUserNotFound.

Returns:
  - error: ErrUserNotFound or store failures
*/
func (repository *RedisUserRepository) UpdateFields(ctx context.Context, username string, changes Changes) error {
	key := userKey(username)

	update := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrUserNotFound
			}
			return err
		}

		user, err := decodeUser(payload)
		if err != nil {
			return err
		}
		changes.Apply(user)

		updated, err := json.Marshal(user)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err = repository.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUserNotFound), apperr.IsAppError(err):
		return err
	default:
		return apperr.StoreUnavailable(fmt.Errorf("redis_user_update_failed: %w", err))
	}
}

/*
Delete removes the user document.

Returns:
  - error: ErrUserNotFound when the key was absent, or store failures
*/
func (repository *RedisUserRepository) Delete(ctx context.Context, username string) error {
	removed, err := repository.client.Del(ctx, userKey(username)).Result()
	if err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("redis_user_delete_failed: %w", err))
	}
	if removed == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Ping checks that the Redis server answers.
func (repository *RedisUserRepository) Ping(ctx context.Context) error {
	if err := repository.client.Ping(ctx).Err(); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("redis_user_ping_failed: %w", err))
	}
	return nil
}

func decodeUser(payload []byte) (*User, error) {
	user := &User{}
	if err := json.Unmarshal(payload, user); err != nil {
		return nil, apperr.StoreUnavailable(fmt.Errorf("redis_user_decode_failed: %w", err))
	}
	return user, nil
}
