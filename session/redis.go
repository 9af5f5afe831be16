package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash key used by [NewRedisStore] when none is given.
const DefaultRedisKey = "pa:session"

// RedisStore persists the session as a single Redis hash whose fields are the
// persisted field names. Save replaces all fields in one transaction so a
// reader never observes a half-written record.
type RedisStore struct {
	redis redis.UniversalClient
	key   string
}

// NewRedisStore creates a [RedisStore] backed by the given Redis client.
// key sets the hash key; pass "" for [DefaultRedisKey].
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: client, key: key}
}

// Load fetches and decodes the current session.
//
//	Performance: 1 Redis HGETALL.
func (s *RedisStore) Load(ctx context.Context) (*Session, error) {
	fields, err := s.redis.HGetAll(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	version := parseVersionTag(fields[FieldStorageVersion])
	sess, err := decodeFields(fields, version)
	if err != nil {
		// Corrupt or tokenless record: absent, never an error past this point.
		return nil, nil
	}
	return sess, nil
}

// Save persists all session fields atomically, preserving the storage tag.
//
//	Performance: 1 Redis MULTI/EXEC (HDEL + HSET).
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	fields, err := encodeFields(sess)
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, s.key, dataFields...)
		pipe.HSet(ctx, s.key, args...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Clear removes the session data fields. The storageVersion tag survives;
// it is owned by [RedisStore.EnsureSchema]. Clearing an already-empty record
// is a no-op, so the operation is idempotent.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.HDel(ctx, s.key, dataFields...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// EnsureSchema wipes the whole record and writes the new tag when the stored
// storageVersion differs from currentVersion. A missing tag counts as a
// mismatch.
//
//	Performance: 1 HGET, plus 1 MULTI/EXEC on mismatch.
func (s *RedisStore) EnsureSchema(ctx context.Context, currentVersion int) (bool, error) {
	raw, err := s.redis.HGet(ctx, s.key, FieldStorageVersion).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if parseVersionTag(raw) == currentVersion {
		return false, nil
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key, FieldStorageVersion, strconv.Itoa(currentVersion))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return true, nil
}

func parseVersionTag(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
