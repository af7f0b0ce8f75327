package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/volleyfit/internal/config"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{LogStore: config.LogStoreMemory}, OpenParams{})
	require.NoError(t, err)
	assert.IsType(t, &workoutlog.MemoryStore{}, s.KV)
	assert.Nil(t, s.Redis)
	assert.Nil(t, s.DBPool)
	assert.NoError(t, s.Close())
}

func TestOpen_Redis(t *testing.T) {
	cfg := &config.Config{
		LogStore:  config.LogStoreRedis,
		RedisHost: "localhost",
		// nothing listens here, ping only logs the failure
		RedisPort: "1",
	}
	s, err := Open(context.Background(), cfg, OpenParams{})
	require.NoError(t, err)
	assert.IsType(t, &workoutlog.RedisStore{}, s.KV)
	require.NotNil(t, s.Redis)
	assert.NoError(t, s.Close())
	assert.Nil(t, s.Redis)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{LogStore: config.LogStoreRedis}, OpenParams{})
	assert.ErrorContains(t, err, "redis log store without redis config")

	_, err = Open(context.Background(), &config.Config{LogStore: "sqlite"}, OpenParams{})
	assert.ErrorContains(t, err, "unknown log store: sqlite")
}
