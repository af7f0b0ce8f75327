package program

const (
	ProgramWeeks = 12
	// bodyweight exercises get more reps every progressionStepWeeks weeks
	progressionStepWeeks = 3
	progressionRepsStep  = 2
)

// GenerateProgram expands the base exercises of a module into the 12 week
// progressive program. Every week holds all the base exercises in the same order.
// Weighted exercises keep the base reps (progression comes from the logged weight),
// bodyweight ones get 2 more reps every 3 weeks.
func GenerateProgram(base []Exercise) []WorkoutWeek {
	weeks := make([]WorkoutWeek, 0, ProgramWeeks)
	for weekNumber := 1; weekNumber <= ProgramWeeks; weekNumber++ {
		exercises := make([]Exercise, 0, len(base))
		for _, baseExercise := range base {
			ex := baseExercise.clone()
			ex.Reps = RepsForWeek(baseExercise, weekNumber)
			exercises = append(exercises, ex)
		}

		weeks = append(weeks, WorkoutWeek{
			WeekNumber: weekNumber,
			Exercises:  exercises,
		})
	}
	return weeks
}

// RepsForWeek returns the reps target of the exercise in the given week.
func RepsForWeek(ex Exercise, weekNumber int) int {
	if ex.RequiresWeight {
		return ex.Reps
	}
	progressionFactor := (weekNumber - 1) / progressionStepWeeks
	return ex.Reps + progressionFactor*progressionRepsStep
}
