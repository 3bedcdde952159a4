package ticker

import "time"

// Timer is a scheduled callback that can be canceled.
type Timer interface {
	Stop() bool
}

// Clock provides the time operations the Manager depends on.
//
// Tests substitute a manual clock to fire callbacks deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
