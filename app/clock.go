package app

import "time"

//go:generate go tool go.uber.org/mock/mockgen -source=clock.go -destination=clock_mock.go -package=app

// Clock is the wall-clock source for movement timestamps and date labels.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
