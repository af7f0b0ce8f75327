package workoutlog

import (
	"errors"
	"time"
)

var (
	ErrUnknownModule   = errors.New("unknown module")
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrInvalidEntry    = errors.New("invalid workout log entry")
)

// SetEntry is a single performed set. For timed exercises Reps holds seconds.
type SetEntry struct {
	Reps   int      `json:"reps" validate:"gte=0"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
}

// HasWeight is true only for a present, positive weight.
func (s SetEntry) HasWeight() bool {
	return s.Weight != nil && *s.Weight > 0
}

type WorkoutLog struct {
	Date       time.Time  `json:"date"`
	ExerciseID string     `json:"exerciseId"`
	Sets       []SetEntry `json:"sets"`
}

// FirstSet returns the first set of the entry, false when the entry has no sets.
func (l WorkoutLog) FirstSet() (SetEntry, bool) {
	if len(l.Sets) == 0 {
		return SetEntry{}, false
	}
	return l.Sets[0], true
}

// LogsKey is the storage key holding the log sequence of a module.
func LogsKey(moduleID string) string {
	return moduleID + "-logs"
}
