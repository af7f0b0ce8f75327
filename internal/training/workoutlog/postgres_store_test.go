//go:build integration_test || all_tests

package workoutlog_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/volleyfit/internal/db"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

func testPostgresStoreSetup(t *testing.T) *workoutlog.PostgresStore {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, dockerPool.Client.Ping())

	pgResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=volleyfit",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := dockerPool.Purge(pgResource); err != nil {
			t.Logf("purge postgres container: %s", err)
		}
	})

	var store *workoutlog.PostgresStore
	dockerPool.MaxWait = time.Minute
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     "localhost",
			DBPort:     pgResource.GetPort("5432/tcp"),
			DBName:     "volleyfit",
			DBUser:     "postgres",
			DBPassword: "postgres",
		})
		if err != nil {
			return err
		}
		if err := dbPool.Ping(ctx); err != nil {
			dbPool.Close()
			return fmt.Errorf("ping: %w", err)
		}

		store = workoutlog.NewPostgresStore(dbPool)
		t.Cleanup(dbPool.Close)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))

	return store
}

func TestPostgresStore(t *testing.T) {
	store := testPostgresStoreSetup(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "strength-logs")
	assert.ErrorIs(t, err, workoutlog.ErrKeyNotFound)

	repo := workoutlog.NewRepository(store, nil)
	first := fakeWorkoutLog("pushups")
	second := fakeWorkoutLog("plank")

	total, err := repo.AppendLog(ctx, "strength", first)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	total, err = repo.AppendLog(ctx, "strength", second)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	logs, err := repo.GetLogs(ctx, "strength")
	require.NoError(t, err)
	assert.Equal(t, []workoutlog.WorkoutLog{first, second}, logs)

	// schema creation is idempotent
	require.NoError(t, store.EnsureSchema(ctx))
}

func TestPostgresStore_ConcurrentAppends(t *testing.T) {
	store := testPostgresStoreSetup(t)
	ctx := context.Background()

	// service and import tool share the table
	serviceRepo := workoutlog.NewRepository(store, nil)
	importRepo := workoutlog.NewRepository(store, nil)

	const appendsPerRepo = 20
	var wg sync.WaitGroup
	for _, repo := range []*workoutlog.Repository{serviceRepo, importRepo} {
		for i := 0; i < appendsPerRepo; i++ {
			wg.Add(1)
			go func(repo *workoutlog.Repository) {
				defer wg.Done()
				_, err := repo.AppendLog(ctx, "vertical-jump", fakeWorkoutLog("squat"))
				assert.NoError(t, err)
			}(repo)
		}
	}
	wg.Wait()

	logs, err := serviceRepo.GetLogs(ctx, "vertical-jump")
	require.NoError(t, err)
	assert.Len(t, logs, 2*appendsPerRepo)
}
