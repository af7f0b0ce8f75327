package workoutlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/volleyfit/internal/telemetry/tracing"
)

const (
	// optimistic WATCH retries before giving up on a hot key
	maxUpdateRetries = 50
	updateRetryDelay = 2 * time.Millisecond
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb: rdb,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get [%s]: %w", key, err)
	}

	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set [%s]: %w", key, err)
	}
	return nil
}

// Update watches the key and replaces it in a MULTI/EXEC transaction. The
// transaction fails when another client changes the key in the meantime, in
// which case the whole read-update-write is retried.
func (s *RedisStore) Update(ctx context.Context, key string, update UpdateFunc) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.redis.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	txf := func(tx *redis.Tx) error {
		found := true
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return err
		}

		value, err := update(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			span.SetAttributes(attribute.Int("update.retries", i+1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * updateRetryDelay):
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("redis update [%s]: %w", key, err)
		}
		return nil
	}

	return fmt.Errorf("redis update [%s]: %w", key, ErrUpdateConflict)
}
