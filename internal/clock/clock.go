// Package clock abstracts wall-clock reads and delayed task scheduling
// so lifecycle code can run against a virtual clock in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Task is a pending delayed callback. Cancel reports whether the
// callback was stopped before running; cancelling an already-fired
// task is a no-op.
type Task interface {
	Cancel() bool
}

type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func System() Clock { return systemClock{} }

type timerTask struct {
	t *time.Timer
}

func (t *timerTask) Cancel() bool { return t.t.Stop() }

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) Task {
	return &timerTask{t: time.AfterFunc(d, fn)}
}

func NewScheduler() Scheduler { return timerScheduler{} }
