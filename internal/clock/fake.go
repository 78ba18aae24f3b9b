package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced clock and scheduler for tests. Advancing
// past a task's due time runs it synchronously on the advancing
// goroutine, in due-time order.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask
}

type fakeTask struct {
	f         *Fake
	due       time.Time
	fn        func()
	cancelled bool
	fired     bool
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Schedule(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTask{f: f, due: f.now.Add(d), fn: fn}
	f.tasks = append(f.tasks, t)
	return t
}

func (t *fakeTask) Cancel() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()

	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Advance moves the clock forward and fires every task that came due,
// earliest first. Callbacks run without the fake's lock held so they
// may schedule or cancel further tasks.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()

	for {
		t := f.nextDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

func (f *Fake) nextDue() *fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()

	sort.SliceStable(f.tasks, func(i, j int) bool {
		return f.tasks[i].due.Before(f.tasks[j].due)
	})

	for _, t := range f.tasks {
		if !t.fired && !t.cancelled && !t.due.After(f.now) {
			t.fired = true
			return t
		}
	}
	return nil
}

// Pending counts tasks that are neither fired nor cancelled.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, t := range f.tasks {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}
