package workoutlog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/volleyfit/internal/telemetry/tracing"
	"github.com/2beens/volleyfit/internal/training/program"
)

var validate = validator.New()

type LogRequest struct {
	ExerciseID string     `json:"exerciseId" validate:"required"`
	Sets       []SetEntry `json:"sets" validate:"dive"`
	// Date is optional, used when importing older entries.
	Date *time.Time `json:"date,omitempty"`
}

// AppendListener is notified after a log entry has been stored.
type AppendListener interface {
	LogAppended(ctx context.Context, moduleID string)
}

type Service struct {
	repo      *Repository
	catalog   *program.Catalog
	listeners []AppendListener
	now       func() time.Time
}

func NewService(repo *Repository, catalog *program.Catalog, listeners ...AppendListener) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		listeners: listeners,
		now:       time.Now,
	}
}

func (s *Service) AddListener(listener AppendListener) {
	s.listeners = append(s.listeners, listener)
}

// LogWorkout validates and appends a log entry to the module logs. Returns the
// stored entry and the new number of module entries.
func (s *Service) LogWorkout(ctx context.Context, moduleID string, req LogRequest) (_ WorkoutLog, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workoutlog.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("module", moduleID),
		attribute.String("exercise", req.ExerciseID),
	)

	if !s.catalog.IsKnownModule(moduleID) {
		return WorkoutLog{}, 0, fmt.Errorf("%w: %s", ErrUnknownModule, moduleID)
	}

	if err := validate.Struct(req); err != nil {
		return WorkoutLog{}, 0, fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}

	exercise, err := s.catalog.Exercise(moduleID, req.ExerciseID)
	if err != nil {
		return WorkoutLog{}, 0, fmt.Errorf("%w: %s", ErrUnknownExercise, err)
	}

	sets, droppedWeights := normalizeSets(req.Sets, exercise.RequiresWeight)
	if droppedWeights > 0 {
		log.Warnf("workout log [%s/%s]: dropped weight of %d set(s), exercise is not weighted", moduleID, exercise.ID, droppedWeights)
	}

	workoutLog := WorkoutLog{
		Date:       s.now().UTC(),
		ExerciseID: exercise.ID,
		Sets:       sets,
	}
	if req.Date != nil && !req.Date.IsZero() {
		workoutLog.Date = req.Date.UTC()
	}

	total, err = s.repo.AppendLog(ctx, moduleID, workoutLog)
	if err != nil {
		return WorkoutLog{}, 0, fmt.Errorf("append log: %w", err)
	}

	log.Debugf("workout logged [%s/%s], sets: %d, total: %d", moduleID, exercise.ID, len(workoutLog.Sets), total)

	for _, listener := range s.listeners {
		listener.LogAppended(ctx, moduleID)
	}

	return workoutLog, total, nil
}

// Logs returns all log entries of a known module.
func (s *Service) Logs(ctx context.Context, moduleID string) ([]WorkoutLog, error) {
	if !s.catalog.IsKnownModule(moduleID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, moduleID)
	}
	return s.repo.GetLogs(ctx, moduleID)
}

// normalizeSets drops the weight of exercises that do not use one and
// records a single empty set when none were given. Returns the number of
// sets whose weight was dropped.
func normalizeSets(sets []SetEntry, requiresWeight bool) ([]SetEntry, int) {
	if len(sets) == 0 {
		return []SetEntry{{Reps: 0}}, 0
	}

	dropped := 0
	normalized := make([]SetEntry, 0, len(sets))
	for _, set := range sets {
		entry := SetEntry{Reps: set.Reps}
		if set.HasWeight() {
			if requiresWeight {
				weight := *set.Weight
				entry.Weight = &weight
			} else {
				dropped++
			}
		}
		normalized = append(normalized, entry)
	}
	return normalized, dropped
}
