package program

import "errors"

var (
	ErrWeekOutOfRange   = errors.New("week out of range")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Exercise is authored once and never mutated at runtime. Reps holds the rep
// target, or the hold time in seconds for timed exercises.
type Exercise struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Sets           int      `json:"sets"`
	Reps           int      `json:"reps"`
	RequiresWeight bool     `json:"requiresWeight"`
	IsTimed        bool     `json:"isTimed"`
	RestTime       string   `json:"restTime"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	VideoURL       string   `json:"videoUrl,omitempty"`
	FormTips       []string `json:"formTips,omitempty"`
	CommonMistakes []string `json:"commonMistakes,omitempty"`
}

// Unit is what Reps counts.
func (e Exercise) Unit() string {
	if e.IsTimed {
		return "seconds"
	}
	return "reps"
}

func (e Exercise) clone() Exercise {
	c := e
	if e.FormTips != nil {
		c.FormTips = append([]string(nil), e.FormTips...)
	}
	if e.CommonMistakes != nil {
		c.CommonMistakes = append([]string(nil), e.CommonMistakes...)
	}
	return c
}

type WorkoutWeek struct {
	WeekNumber int        `json:"weekNumber"`
	Exercises  []Exercise `json:"exercises"`
}

type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
