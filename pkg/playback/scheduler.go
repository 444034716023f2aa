package playback

import (
	"slices"
	"time"
)

// Cancel stops a scheduled callback. Calling it after the callback ran, or
// more than once, does nothing.
type Cancel func()

// Scheduler runs callbacks after a delay. Implementations must invoke
// callbacks on the goroutine that owns the controller.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Cancel
}

// ManualScheduler is a virtual clock. Callbacks run only inside Advance, on
// the caller's goroutine, which makes it suitable both for tests and for
// hosts that already own a frame loop (the terminal player advances it on
// every tick).
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

type task struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

// Schedule implements Scheduler. Negative delays run at the current time.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) Cancel {
	m.seq++
	t := &task{at: m.now + max(d, 0), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return func() {
		m.tasks = slices.DeleteFunc(m.tasks, func(x *task) bool { return x == t })
	}
}

// Now returns the virtual time.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Pending returns the number of callbacks waiting to run.
func (m *ManualScheduler) Pending() int { return len(m.tasks) }

// Advance moves the clock forward by d and runs every callback that falls
// due, earliest first; callbacks scheduled by callbacks run too if they fall
// inside the window. It returns the number of callbacks run.
func (m *ManualScheduler) Advance(d time.Duration) int {
	end := m.now + max(d, 0)
	ran := 0
	for {
		i := m.due(end)
		if i < 0 {
			break
		}
		t := m.tasks[i]
		m.tasks = slices.Delete(m.tasks, i, i+1)
		m.now = t.at
		t.fn()
		ran++
	}
	m.now = end
	return ran
}

// Drain runs callbacks until none remain or limit have run, advancing the
// clock to each one. It returns the number of callbacks run.
func (m *ManualScheduler) Drain(limit int) int {
	ran := 0
	for ran < limit && len(m.tasks) > 0 {
		i := m.due(time.Duration(1<<63 - 1))
		t := m.tasks[i]
		m.tasks = slices.Delete(m.tasks, i, i+1)
		m.now = max(m.now, t.at)
		t.fn()
		ran++
	}
	return ran
}

// due returns the index of the earliest task at or before end, or -1.
func (m *ManualScheduler) due(end time.Duration) int {
	best := -1
	for i, t := range m.tasks {
		if t.at > end {
			continue
		}
		if best < 0 || t.at < m.tasks[best].at || (t.at == m.tasks[best].at && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	return best
}
