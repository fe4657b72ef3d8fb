package core

import "time"

// StepTimer accumulates wall-clock durations of simulation steps.
type StepTimer struct {
	started time.Time
	start   time.Time
	total   time.Duration
	max     time.Duration
	last    time.Duration
	steps   int

	now func() time.Time
}

// NewStepTimer constructs a StepTimer whose elapsed clock starts now.
func NewStepTimer() *StepTimer {
	t := &StepTimer{now: time.Now}
	t.started = t.now()
	return t
}

// Begin marks the start of a step.
func (t *StepTimer) Begin() {
	t.start = t.now()
}

// End records the duration since the matching Begin and returns it.
func (t *StepTimer) End() time.Duration {
	d := t.now().Sub(t.start)
	t.last = d
	t.total += d
	if d > t.max {
		t.max = d
	}
	t.steps++
	return d
}

// Time runs fn as one timed step.
func (t *StepTimer) Time(fn func()) time.Duration {
	t.Begin()
	fn()
	return t.End()
}

// Steps returns the number of recorded steps.
func (t *StepTimer) Steps() int { return t.steps }

// Total returns the summed step duration.
func (t *StepTimer) Total() time.Duration { return t.total }

// Max returns the slowest recorded step.
func (t *StepTimer) Max() time.Duration { return t.max }

// Last returns the most recent step duration.
func (t *StepTimer) Last() time.Duration { return t.last }

// Mean returns the average step duration, or zero before any step.
func (t *StepTimer) Mean() time.Duration {
	if t.steps == 0 {
		return 0
	}
	return t.total / time.Duration(t.steps)
}

// Elapsed returns the wall-clock time since the timer was created.
func (t *StepTimer) Elapsed() time.Duration {
	return t.now().Sub(t.started)
}
