package cinematic

import (
	"sync"
	"time"
)

// State represents where a playback run is in its lifecycle.
type State string

const (
	StateIdle      State = "idle"      // Not yet started; waiting for the first tick
	StateRunning   State = "running"   // Interpolating between keyframes
	StateCompleted State = "completed" // Terminal until an explicit restart
)

// Sequencer tracks a single playback run of a sequence. It converts wall
// clock ticks from the host frame loop into elapsed seconds, saturates the
// pose at the end of the sequence, and fires the completion callback exactly
// once per run. The camera itself is never touched here; callers apply the
// returned CameraState at the rendering boundary.
//
// Ticks are expected from a single goroutine. The mutex only guards against
// control calls (Skip, Restart) arriving from a UI goroutine mid-run.
type Sequencer struct {
	mu         sync.Mutex
	seq        *Sequence
	state      State
	startedAt  time.Time
	elapsed    float64
	onComplete func()
}

// NewSequencer creates a sequencer in the Idle state. onComplete may be nil;
// when set it fires exactly once per run, on the first tick at or past the
// sequence's total duration, or on Skip.
func NewSequencer(seq *Sequence, onComplete func()) *Sequencer {
	return &Sequencer{
		seq:        seq,
		state:      StateIdle,
		onComplete: onComplete,
	}
}

// Sequence returns the sequence being played.
func (sq *Sequencer) Sequence() *Sequence { return sq.seq }

// State returns the current playback state.
func (sq *Sequencer) State() State {
	sq.mu.Lock()
	defer sq.mu.Unlock()
	return sq.state
}

// Elapsed returns seconds since the run started, clamped to the sequence
// duration once completed.
func (sq *Sequencer) Elapsed() float64 {
	sq.mu.Lock()
	defer sq.mu.Unlock()
	return sq.elapsed
}

// Tick advances the run to the given instant and returns the pose for this
// frame. The first tick of a run records the start timestamp and yields the
// first keyframe's pose. Elapsed time is monotonically non-decreasing within
// a run: a clock that jumps backwards holds the previous elapsed value.
func (sq *Sequencer) Tick(now time.Time) CameraState {
	sq.mu.Lock()
	defer sq.mu.Unlock()

	switch sq.state {
	case StateIdle:
		sq.state = StateRunning
		sq.startedAt = now
		sq.elapsed = 0
	case StateRunning:
		elapsed := now.Sub(sq.startedAt).Seconds()
		if elapsed > sq.elapsed {
			sq.elapsed = elapsed
		}
	case StateCompleted:
		// Terminal: repeated ticks after completion keep returning the
		// final pose and never re-fire the callback.
		return sq.seq.Advance(sq.seq.Duration())
	}

	if sq.elapsed >= sq.seq.Duration() {
		sq.completeLocked()
	}

	return sq.seq.Advance(sq.elapsed)
}

// Skip cancels the run by forcing an immediate transition to Completed.
// The completion callback still fires (once), so downstream mode switching
// runs the same way it would on natural completion. Skipping an Idle or
// already Completed sequencer is a no-op for the callback only in the
// Completed case: an Idle run can be skipped before its first tick.
func (sq *Sequencer) Skip() {
	sq.mu.Lock()
	defer sq.mu.Unlock()

	if sq.state == StateCompleted {
		return
	}
	sq.elapsed = sq.seq.Duration()
	sq.completeLocked()
}

// Restart returns the sequencer to Idle with a fresh start timestamp to be
// recorded on the next tick. A restarted run behaves identically to a fresh
// one regardless of prior history.
func (sq *Sequencer) Restart() {
	sq.mu.Lock()
	defer sq.mu.Unlock()

	sq.state = StateIdle
	sq.startedAt = time.Time{}
	sq.elapsed = 0
}

// completeLocked transitions to Completed and fires the callback.
// Must be called with mu held; the Completed guard in Tick makes the
// callback exactly-once per run.
func (sq *Sequencer) completeLocked() {
	sq.state = StateCompleted
	if sq.onComplete != nil {
		sq.onComplete()
	}
}
