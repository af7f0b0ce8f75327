package workoutlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

type appendRecorder struct {
	modules []string
}

func (r *appendRecorder) LogAppended(_ context.Context, moduleID string) {
	r.modules = append(r.modules, moduleID)
}

func newTestService(t *testing.T) (*workoutlog.Service, *workoutlog.Repository, *appendRecorder) {
	t.Helper()
	repo := workoutlog.NewRepository(workoutlog.NewMemoryStore(), nil)
	recorder := &appendRecorder{}
	service := workoutlog.NewService(repo, program.DefaultCatalog(), recorder)
	return service, repo, recorder
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestService_LogWorkout(t *testing.T) {
	ctx := context.Background()
	service, repo, recorder := newTestService(t)
	now := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	workoutlog.SetServiceClock(service, func() time.Time { return now })

	stored, total, err := service.LogWorkout(ctx, "vertical-jump", workoutlog.LogRequest{
		ExerciseID: "squat",
		Sets: []workoutlog.SetEntry{
			{Reps: 10, Weight: floatPtr(40)},
			{Reps: 10, Weight: floatPtr(0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, now, stored.Date)
	assert.Equal(t, "squat", stored.ExerciseID)
	require.Len(t, stored.Sets, 2)
	require.NotNil(t, stored.Sets[0].Weight)
	assert.Equal(t, 40.0, *stored.Sets[0].Weight)
	// zero weight is no weight
	assert.Nil(t, stored.Sets[1].Weight)

	logs, err := repo.GetLogs(ctx, "vertical-jump")
	require.NoError(t, err)
	assert.Equal(t, []workoutlog.WorkoutLog{stored}, logs)
	assert.Equal(t, []string{"vertical-jump"}, recorder.modules)
}

func TestService_LogWorkout_DropsWeightOfBodyweightExercise(t *testing.T) {
	service, _, _ := newTestService(t)
	logHook := logtest.NewGlobal()
	t.Cleanup(logHook.Reset)

	stored, _, err := service.LogWorkout(context.Background(), "strength", workoutlog.LogRequest{
		ExerciseID: "pushups",
		Sets: []workoutlog.SetEntry{
			{Reps: 12, Weight: floatPtr(10)},
			{Reps: 10, Weight: floatPtr(10)},
			{Reps: 8},
		},
	})
	require.NoError(t, err)
	require.Len(t, stored.Sets, 3)
	assert.Equal(t, 12, stored.Sets[0].Reps)
	for _, set := range stored.Sets {
		assert.Nil(t, set.Weight)
	}

	var warnings []string
	for _, entry := range logHook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry.Message)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "[strength/pushups]: dropped weight of 2 set(s)")

	// weighted exercise keeps it, nothing to warn about
	logHook.Reset()
	stored, _, err = service.LogWorkout(context.Background(), "strength", workoutlog.LogRequest{
		ExerciseID: "dumbbell-rows",
		Sets:       []workoutlog.SetEntry{{Reps: 10, Weight: floatPtr(12.5)}},
	})
	require.NoError(t, err)
	require.NotNil(t, stored.Sets[0].Weight)
	assert.Equal(t, 12.5, *stored.Sets[0].Weight)
	for _, entry := range logHook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, entry.Level)
	}
}

func TestService_LogWorkout_NoSets(t *testing.T) {
	service, _, _ := newTestService(t)

	stored, _, err := service.LogWorkout(context.Background(), "stretching", workoutlog.LogRequest{
		ExerciseID: "hip-flexor",
	})
	require.NoError(t, err)
	assert.Equal(t, []workoutlog.SetEntry{{Reps: 0}}, stored.Sets)
}

func TestService_LogWorkout_SuppliedDate(t *testing.T) {
	service, _, _ := newTestService(t)
	date := time.Date(2023, 12, 24, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	stored, _, err := service.LogWorkout(context.Background(), "strength", workoutlog.LogRequest{
		ExerciseID: "plank",
		Sets:       []workoutlog.SetEntry{{Reps: 45}},
		Date:       &date,
	})
	require.NoError(t, err)
	assert.True(t, date.Equal(stored.Date))
	assert.Equal(t, time.UTC, stored.Date.Location())
}

func TestService_LogWorkout_Errors(t *testing.T) {
	ctx := context.Background()
	service, repo, recorder := newTestService(t)

	_, _, err := service.LogWorkout(ctx, "beach", workoutlog.LogRequest{ExerciseID: "squat"})
	assert.ErrorIs(t, err, workoutlog.ErrUnknownModule)

	_, _, err = service.LogWorkout(ctx, "strength", workoutlog.LogRequest{ExerciseID: "squat"})
	assert.ErrorIs(t, err, workoutlog.ErrUnknownExercise)

	_, _, err = service.LogWorkout(ctx, "strength", workoutlog.LogRequest{})
	assert.ErrorIs(t, err, workoutlog.ErrInvalidEntry)

	_, _, err = service.LogWorkout(ctx, "strength", workoutlog.LogRequest{
		ExerciseID: "pushups",
		Sets:       []workoutlog.SetEntry{{Reps: -1}},
	})
	assert.ErrorIs(t, err, workoutlog.ErrInvalidEntry)

	_, _, err = service.LogWorkout(ctx, "strength", workoutlog.LogRequest{
		ExerciseID: "dumbbell-rows",
		Sets:       []workoutlog.SetEntry{{Reps: 8, Weight: floatPtr(-5)}},
	})
	assert.ErrorIs(t, err, workoutlog.ErrInvalidEntry)

	logs, err := repo.GetLogs(ctx, "strength")
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Empty(t, recorder.modules)
}

func TestService_Logs(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	_, err := service.Logs(ctx, "beach")
	assert.ErrorIs(t, err, workoutlog.ErrUnknownModule)

	logs, err := service.Logs(ctx, "strength")
	require.NoError(t, err)
	assert.Empty(t, logs)

	for i := 0; i < 3; i++ {
		_, total, err := service.LogWorkout(ctx, "strength", workoutlog.LogRequest{
			ExerciseID: "band-pulls",
			Sets:       []workoutlog.SetEntry{{Reps: 15 + i}},
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, total)
	}

	logs, err = service.Logs(ctx, "strength")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, 15, logs[0].Sets[0].Reps)
	assert.Equal(t, 17, logs[2].Sets[0].Reps)
}
