package cinematic

import (
	"testing"
	"time"
)

func testSequencer(t *testing.T, onComplete func()) *Sequencer {
	t.Helper()
	return NewSequencer(introSequence(t), onComplete)
}

func TestSequencer_InitialState(t *testing.T) {
	sq := testSequencer(t, nil)

	if sq.State() != StateIdle {
		t.Errorf("expected initial state %s, got %s", StateIdle, sq.State())
	}
	if sq.Elapsed() != 0 {
		t.Errorf("expected zero elapsed, got %v", sq.Elapsed())
	}
}

func TestSequencer_FirstTickStartsRun(t *testing.T) {
	sq := testSequencer(t, nil)
	start := time.Now()

	state := sq.Tick(start)

	if sq.State() != StateRunning {
		t.Errorf("expected state %s after first tick, got %s", StateRunning, sq.State())
	}
	if !approxVec(state.Position, Vec3{0, 0, 0}) {
		t.Errorf("first tick should yield the first keyframe pose, got %+v", state.Position)
	}
}

func TestSequencer_CompletionFiresExactlyOnce(t *testing.T) {
	completions := 0
	sq := testSequencer(t, func() { completions++ })
	start := time.Unix(1000, 0)

	// Ticks crossing the 5s total duration, then several more past it.
	offsets := []float64{0, 1, 2.5, 4, 4.9, 5.0, 5.1, 6, 60}
	for _, off := range offsets {
		sq.Tick(start.Add(time.Duration(off * float64(time.Second))))
	}

	if completions != 1 {
		t.Errorf("expected completion to fire exactly once, fired %d times", completions)
	}
	if sq.State() != StateCompleted {
		t.Errorf("expected terminal state %s, got %s", StateCompleted, sq.State())
	}
}

func TestSequencer_CompletionOnFirstTickAtDuration(t *testing.T) {
	completed := false
	sq := testSequencer(t, func() { completed = true })
	start := time.Unix(1000, 0)

	sq.Tick(start)
	if completed {
		t.Fatal("completion fired before the run crossed the total duration")
	}

	// First tick at exactly totalDuration must complete.
	sq.Tick(start.Add(5 * time.Second))
	if !completed {
		t.Error("completion should fire on the first tick where elapsed >= total")
	}
}

func TestSequencer_TicksAfterCompletionHoldFinalPose(t *testing.T) {
	sq := testSequencer(t, nil)
	start := time.Unix(1000, 0)

	sq.Tick(start)
	final := sq.Tick(start.Add(10 * time.Second))
	held := sq.Tick(start.Add(20 * time.Second))

	if final != held {
		t.Errorf("post-completion ticks should hold the final pose: %+v vs %+v", final, held)
	}
	if !approxVec(held.Position, Vec3{10, 10, 0}) {
		t.Errorf("expected final keyframe position, got %+v", held.Position)
	}
}

func TestSequencer_MonotonicElapsed(t *testing.T) {
	sq := testSequencer(t, nil)
	start := time.Unix(1000, 0)

	sq.Tick(start)
	sq.Tick(start.Add(3 * time.Second))

	// A clock jumping backwards must not rewind the run.
	sq.Tick(start.Add(1 * time.Second))

	if sq.Elapsed() < 3 {
		t.Errorf("elapsed rewound to %v after backwards clock jump", sq.Elapsed())
	}
}

func TestSequencer_SkipForcesCompletion(t *testing.T) {
	completions := 0
	sq := testSequencer(t, func() { completions++ })
	start := time.Unix(1000, 0)

	sq.Tick(start)
	sq.Tick(start.Add(1 * time.Second))

	sq.Skip()

	if sq.State() != StateCompleted {
		t.Errorf("expected %s after skip, got %s", StateCompleted, sq.State())
	}
	if completions != 1 {
		t.Errorf("skip should fire the completion callback once, fired %d times", completions)
	}

	// Skip again and keep ticking: callback must not re-fire.
	sq.Skip()
	sq.Tick(start.Add(2 * time.Second))
	if completions != 1 {
		t.Errorf("completion re-fired after skip, total %d", completions)
	}
}

func TestSequencer_SkipBeforeFirstTick(t *testing.T) {
	completions := 0
	sq := testSequencer(t, func() { completions++ })

	sq.Skip()

	if sq.State() != StateCompleted {
		t.Errorf("expected %s, got %s", StateCompleted, sq.State())
	}
	if completions != 1 {
		t.Errorf("expected one completion, got %d", completions)
	}
}

func TestSequencer_RestartBehavesLikeFreshRun(t *testing.T) {
	completions := 0
	sq := testSequencer(t, func() { completions++ })
	start := time.Unix(1000, 0)

	// First run to completion.
	sq.Tick(start)
	sq.Tick(start.Add(10 * time.Second))
	if completions != 1 {
		t.Fatalf("expected one completion after first run, got %d", completions)
	}

	sq.Restart()
	if sq.State() != StateIdle {
		t.Fatalf("expected %s after restart, got %s", StateIdle, sq.State())
	}
	if sq.Elapsed() != 0 {
		t.Fatalf("expected zero elapsed after restart, got %v", sq.Elapsed())
	}

	// Second run starts from the first keyframe at a new timestamp and
	// completes independently of the first run's history.
	restart := start.Add(time.Hour)
	state := sq.Tick(restart)
	if !approxVec(state.Position, Vec3{0, 0, 0}) {
		t.Errorf("restarted run should begin at the first keyframe, got %+v", state.Position)
	}

	mid := sq.Tick(restart.Add(1 * time.Second))
	if !approxVec(mid.Position, Vec3{5, 0, 0}) {
		t.Errorf("restarted run should interpolate like a fresh run, got %+v", mid.Position)
	}

	sq.Tick(restart.Add(10 * time.Second))
	if completions != 2 {
		t.Errorf("expected second completion after replay, got %d", completions)
	}
}
