package progress

import (
	"time"

	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
	"github.com/2beens/volleyfit/pkg"
)

const (
	NoWorkoutsYet = "No workouts yet"

	lastWorkoutLayout = "Jan 02, 2006"
	pointDateLayout   = "Jan 02"
)

// Point is a single chart point of an exercise series.
type Point struct {
	Date   string   `json:"date"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
	// Time mirrors Reps for timed exercises (seconds held).
	Time *int `json:"time,omitempty"`
}

type ModuleProgress struct {
	TotalSets   int                `json:"totalSets"`
	LastWorkout string             `json:"lastWorkout"`
	Improvement float64            `json:"improvement"`
	Series      map[string][]Point `json:"series"`
}

type AggregateOptions struct {
	// Exercises of the module by id, used to tell timed exercises apart.
	Exercises map[string]program.Exercise
	// Location used to format dates, UTC when nil.
	Location *time.Location
}

// Aggregate computes the progress stats of a module from its log sequence.
// Logs are expected in stored (chronological) order and are never reordered.
func Aggregate(logs []workoutlog.WorkoutLog, opts AggregateOptions) ModuleProgress {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	result := ModuleProgress{
		TotalSets:   len(logs),
		LastWorkout: NoWorkoutsYet,
		Series:      make(map[string][]Point),
	}
	if len(logs) == 0 {
		return result
	}

	result.LastWorkout = logs[len(logs)-1].Date.In(loc).Format(lastWorkoutLayout)

	// first sets of each exercise's entries, in order
	firstSets := make(map[string][]workoutlog.SetEntry)
	var exerciseOrder []string
	for _, entry := range logs {
		set, ok := entry.FirstSet()
		if !ok {
			continue
		}
		if _, seen := firstSets[entry.ExerciseID]; !seen {
			exerciseOrder = append(exerciseOrder, entry.ExerciseID)
		}
		firstSets[entry.ExerciseID] = append(firstSets[entry.ExerciseID], set)

		point := Point{
			Date: entry.Date.In(loc).Format(pointDateLayout),
			Reps: set.Reps,
		}
		if set.HasWeight() {
			weight := *set.Weight
			point.Weight = &weight
		}
		if opts.Exercises[entry.ExerciseID].IsTimed {
			seconds := set.Reps
			point.Time = &seconds
		}
		result.Series[entry.ExerciseID] = append(result.Series[entry.ExerciseID], point)
	}

	var total float64
	qualifying := 0
	for _, exerciseID := range exerciseOrder {
		pct, ok := improvement(firstSets[exerciseID])
		if !ok {
			continue
		}
		total += pct
		qualifying++
	}
	if qualifying > 0 {
		result.Improvement = pkg.RoundTo(total/float64(qualifying), 2)
	}

	return result
}

// improvement is the percentage change from the first to the last set. The
// metric is the weight when both carry one, the reps otherwise. Not defined
// for fewer than two sets or a zero first metric.
func improvement(sets []workoutlog.SetEntry) (float64, bool) {
	if len(sets) < 2 {
		return 0, false
	}

	first, last := sets[0], sets[len(sets)-1]
	firstMetric, lastMetric := float64(first.Reps), float64(last.Reps)
	if first.HasWeight() && last.HasWeight() {
		firstMetric, lastMetric = *first.Weight, *last.Weight
	}
	if firstMetric == 0 {
		return 0, false
	}

	return (lastMetric - firstMetric) / firstMetric * 100, true
}
