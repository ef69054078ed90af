package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by Get and GetSession on a cache miss.
var ErrKeyNotFound = goredis.Nil

var errGuardChanged = errors.New("guard key changed")

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	SetIfUnchanged(ctx context.Context, key, value string, ttl time.Duration, guardKey, guardValue string) (bool, error)
	SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation. A nil client
// turns every write into a no-op and every read into a miss.
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Get retrieves a value by key from Redis
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", ErrKeyNotFound
	}
	return r.client.Get(ctx, key).Result()
}

// SetWithTTL stores a key/value pair; a zero ttl means no expiration.
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redis) Delete(ctx context.Context, keys ...string) error {
	if r.client == nil || len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redis) Incr(ctx context.Context, key string) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	return r.client.Incr(ctx, key).Result()
}

// SetIfUnchanged stores key only while guardKey still holds guardValue, an
// empty guardValue meaning the guard is unset. It reports whether the write
// happened.
func (r *redis) SetIfUnchanged(ctx context.Context, key, value string, ttl time.Duration, guardKey, guardValue string) (bool, error) {
	if r.client == nil {
		return false, nil
	}

	err := r.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, guardKey).Result()
		if err != nil && err != goredis.Nil {
			return err
		}
		if current != guardValue {
			return errGuardChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, guardKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errGuardChanged), errors.Is(err, goredis.TxFailedErr):
		return false, nil
	}
	return false, err
}

func (r *redis) SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, sessionKey(sessionID), userID, ttl).Err()
}

func (r *redis) GetSession(ctx context.Context, sessionID string) (string, error) {
	if r.client == nil {
		return "", ErrKeyNotFound
	}
	return r.client.Get(ctx, sessionKey(sessionID)).Result()
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
