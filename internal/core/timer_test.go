package core

import (
	"testing"
	"time"
)

// fakeClock returns the given offsets from a fixed base, one per call.
func fakeClock(offsets ...time.Duration) func() time.Time {
	base := time.Unix(0, 0)
	i := 0
	return func() time.Time {
		off := offsets[len(offsets)-1]
		if i < len(offsets) {
			off = offsets[i]
		}
		i++
		return base.Add(off)
	}
}

func TestStepTimerAccumulates(t *testing.T) {
	timer := &StepTimer{now: fakeClock(0, 2*time.Millisecond, 2*time.Millisecond, 8*time.Millisecond)}

	timer.Begin()
	timer.End()
	timer.Begin()
	timer.End()

	if timer.Steps() != 2 {
		t.Fatalf("steps = %d, want 2", timer.Steps())
	}
	if timer.Total() != 8*time.Millisecond {
		t.Fatalf("total = %s, want 8ms", timer.Total())
	}
	if timer.Max() != 6*time.Millisecond {
		t.Fatalf("max = %s, want 6ms", timer.Max())
	}
	if timer.Mean() != 4*time.Millisecond {
		t.Fatalf("mean = %s, want 4ms", timer.Mean())
	}
	if timer.Last() != 6*time.Millisecond {
		t.Fatalf("last = %s, want 6ms", timer.Last())
	}
}

func TestStepTimerMeanBeforeSteps(t *testing.T) {
	timer := NewStepTimer()
	if timer.Mean() != 0 {
		t.Fatalf("mean before any step = %s, want 0", timer.Mean())
	}
	ran := false
	timer.Time(func() { ran = true })
	if !ran || timer.Steps() != 1 {
		t.Fatal("Time did not run and record the step")
	}
}
