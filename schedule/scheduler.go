package schedule

import "time"

// Task is a repeating callback registered on a Scheduler.
type Task struct {
	fn        func()
	next      time.Time
	period    time.Duration
	cancelled bool
}

// Cancel stops the task. It is safe to call more than once and from inside
// the task's own callback.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	return t == nil || t.cancelled
}

// Scheduler runs repeating tasks cooperatively. Nothing runs until Tick is
// called, so every task executes on the caller's goroutine.
type Scheduler struct {
	now   time.Time
	tasks []*Task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Tick.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// InvokeRepeating schedules fn to run delay after the last Tick and then
// every period. A non-positive period runs fn on every Tick.
func (s *Scheduler) InvokeRepeating(delay, period time.Duration, fn func()) *Task {
	if s == nil || fn == nil {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	t := &Task{fn: fn, next: s.now.Add(delay), period: period}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances the scheduler clock to now and runs every task that is due.
// Tasks added during a Tick first run on the following Tick.
func (s *Scheduler) Tick(now time.Time) {
	if s == nil {
		return
	}
	if now.After(s.now) {
		s.now = now
	}

	due := append([]*Task(nil), s.tasks...)
	for _, t := range due {
		if t.cancelled || t.next.After(s.now) {
			continue
		}
		t.fn()
		if t.period > 0 {
			t.next = t.next.Add(t.period)
			// skip missed periods instead of replaying them
			if !t.next.After(s.now) {
				t.next = s.now.Add(t.period)
			}
		} else {
			t.next = s.now
		}
	}

	s.compact()
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
