package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/volleyfit/internal/telemetry/metrics"
	"github.com/2beens/volleyfit/internal/telemetry/tracing"
)

// Repository keeps the workout logs of each module as one JSON array stored
// under LogsKey(moduleID). Entries are only ever appended, each append is a
// single KVStore.Update so concurrent writers never lose entries.
type Repository struct {
	store          KVStore
	metricsManager *metrics.Manager
}

func NewRepository(store KVStore, metricsManager *metrics.Manager) *Repository {
	return &Repository{
		store:          store,
		metricsManager: metricsManager,
	}
}

// GetLogs returns the stored logs of a module, oldest first. A missing or
// undecodable value yields an empty sequence.
func (r *Repository) GetLogs(ctx context.Context, moduleID string) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("module", moduleID))

	logs, _, err := r.load(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("logs.count", len(logs)))

	return logs, nil
}

// AppendLog appends the entry to the module sequence and writes the whole
// sequence back. Returns the new number of entries.
func (r *Repository) AppendLog(ctx context.Context, moduleID string, workoutLog WorkoutLog) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("module", moduleID),
		attribute.String("exercise", workoutLog.ExerciseID),
	)

	total := 0
	err = r.store.Update(ctx, LogsKey(moduleID), func(current []byte, found bool) ([]byte, error) {
		logs := []WorkoutLog{}
		if found {
			var malformed bool
			if logs, malformed = r.decode(moduleID, current); malformed {
				log.Warnf("workout logs [%s]: starting a fresh sequence over malformed stored value", moduleID)
			}
		}

		logs = append(logs, workoutLog)
		logsJson, err := json.Marshal(logs)
		if err != nil {
			return nil, fmt.Errorf("marshal logs: %w", err)
		}
		total = len(logs)
		return logsJson, nil
	})
	if err != nil {
		return 0, fmt.Errorf("store logs: %w", err)
	}

	if r.metricsManager != nil {
		r.metricsManager.CounterWorkoutLogs.WithLabelValues(moduleID).Inc()
	}

	return total, nil
}

func (r *Repository) load(ctx context.Context, moduleID string) (_ []WorkoutLog, malformed bool, _ error) {
	key := LogsKey(moduleID)
	value, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return []WorkoutLog{}, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("get logs [%s]: %w", key, err)
	}

	logs, malformed := r.decode(moduleID, value)
	return logs, malformed, nil
}

func (r *Repository) decode(moduleID string, value []byte) (_ []WorkoutLog, malformed bool) {
	var logs []WorkoutLog
	if err := json.Unmarshal(value, &logs); err != nil {
		log.Warnf("workout logs [%s] malformed, treating as empty: %s", LogsKey(moduleID), err)
		if r.metricsManager != nil {
			r.metricsManager.CounterMalformedLogs.WithLabelValues(moduleID).Inc()
		}
		return []WorkoutLog{}, true
	}
	if logs == nil {
		// stored "null"
		logs = []WorkoutLog{}
	}

	return logs, false
}
