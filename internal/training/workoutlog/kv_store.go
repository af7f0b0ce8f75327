package workoutlog

import (
	"context"
	"errors"
)

//go:generate mockgen -source=$GOFILE -destination=kv_store_mocks_test.go -package=workoutlog_test

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrUpdateConflict = errors.New("key kept changing during update")
)

// UpdateFunc receives the current value of a key (found is false when the key
// is absent) and returns the value that replaces it. It may be called more
// than once for a single Update.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// KVStore is a string keyed store of opaque values. Set replaces the whole
// value of a key in one operation. Update reads and replaces a key as one
// atomic step, also against other processes sharing the store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, update UpdateFunc) error
}
