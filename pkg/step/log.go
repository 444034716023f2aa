package step

import (
	"iter"
	"slices"
)

// Log is the complete, ordered sequence of steps of one algorithm run.
// A Log is immutable once built; the zero value is an empty log.
type Log struct {
	steps []Step
}

// Len returns the number of steps.
func (l Log) Len() int { return len(l.steps) }

// Empty reports whether the log has no steps.
func (l Log) Empty() bool { return len(l.steps) == 0 }

// At returns step i. It panics if i is out of range, like slice indexing.
func (l Log) At(i int) Step { return l.steps[i] }

// Steps returns a copy of the steps.
func (l Log) Steps() []Step { return slices.Clone(l.steps) }

// All iterates over (index, step) pairs in execution order.
func (l Log) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, s := range l.steps {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Kinds returns the kind of every step, in order.
func (l Log) Kinds() []Kind {
	out := make([]Kind, len(l.steps))
	for i, s := range l.steps {
		out[i] = s.Kind()
	}
	return out
}

// Last returns the final step, or nil for an empty log.
func (l Log) Last() Step {
	if len(l.steps) == 0 {
		return nil
	}
	return l.steps[len(l.steps)-1]
}

// Recorder builds a Log append-only. Algorithms own one Recorder per run.
type Recorder struct {
	steps  []Step
	sealed bool
}

// Add appends s. Adding to a sealed recorder panics: the log it produced has
// already been handed out.
func (r *Recorder) Add(s Step) {
	if r.sealed {
		panic("step: Add after Log")
	}
	r.steps = append(r.steps, s)
}

// Len returns the number of steps recorded so far.
func (r *Recorder) Len() int { return len(r.steps) }

// Log seals the recorder and returns the finished log.
func (r *Recorder) Log() Log {
	r.sealed = true
	return Log{steps: r.steps}
}

// NewLog builds a Log from steps. It is mostly useful in tests.
func NewLog(steps ...Step) Log {
	return Log{steps: slices.Clone(steps)}
}
