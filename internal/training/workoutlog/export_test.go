package workoutlog

import "time"

func SetServiceClock(s *Service, now func() time.Time) {
	s.now = now
}
