package tui

import "time"

// Clock abstracts wall-clock time so tests can drive it deterministically.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type systemClock struct{}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}
