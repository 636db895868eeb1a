// Package director coordinates camera mode transitions and cinematic
// playback against durable playback state.
package director

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dollycam/dolly/internal/application/port"
	"github.com/dollycam/dolly/internal/cinematic"
	"github.com/dollycam/dolly/internal/logging"
)

// CameraMode identifies who currently drives the camera.
type CameraMode string

const (
	ModeCinematic CameraMode = "cinematic" // Sequencer drives the camera
	ModeOrbit     CameraMode = "orbit"     // Free orbit around the scene
	ModeGame      CameraMode = "game"      // First-person game controls
	ModeVR        CameraMode = "vr"        // Headset pose drives the camera
	ModeLocked    CameraMode = "locked"    // Camera frozen in place
)

// Valid reports whether m is a known camera mode.
func (m CameraMode) Valid() bool {
	switch m {
	case ModeCinematic, ModeOrbit, ModeGame, ModeVR, ModeLocked:
		return true
	}
	return false
}

// Transition records a completed mode change for debugging.
type Transition struct {
	From      CameraMode
	To        CameraMode
	Reason    string
	Timestamp time.Time
}

const transitionHistorySize = 32

// Director owns the camera mode and the active cinematic run. While the
// mode is cinematic it advances the sequencer every tick and forwards
// the resulting pose to the rig; in every other mode ticks are no-ops
// and the rig's own controls drive the camera.
type Director struct {
	mu        sync.Mutex
	mode      CameraMode
	sequencer *cinematic.Sequencer
	seqName   string
	rig       port.CameraRig
	store     port.PlaybackStore
	history   []Transition
}

// New creates a Director in orbit mode with no active sequence.
func New(rig port.CameraRig, store port.PlaybackStore) *Director {
	return &Director{
		mode:  ModeOrbit,
		rig:   rig,
		store: store,
	}
}

// Mode returns the current camera mode.
func (d *Director) Mode() CameraMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// History returns the recorded mode transitions, oldest first.
func (d *Director) History() []Transition {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Transition, len(d.history))
	copy(out, d.history)
	return out
}

// SetMode switches the camera mode manually. Switching away from
// cinematic abandons the active run without marking it played;
// switching to cinematic requires a sequence started via Start or
// Replay.
func (d *Director) SetMode(mode CameraMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown camera mode: %s", mode)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if mode == d.mode {
		return nil
	}
	if mode == ModeCinematic && d.sequencer == nil {
		return fmt.Errorf("no active sequence to enter cinematic mode")
	}

	d.transitionLocked(mode, "manual")
	return nil
}

// Start begins the intro flow for the named sequence. On first visit
// (the durable intro flag unset) the director enters cinematic mode and
// plays the sequence; on return visits it stays in orbit mode.
func (d *Director) Start(ctx context.Context, seq *cinematic.Sequence) error {
	log := logging.FromContext(ctx)

	played, err := d.store.IntroPlayed(ctx, seq.Name())
	if err != nil {
		return fmt.Errorf("failed to read intro flag: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if played {
		log.Debug().Str("sequence", seq.Name()).Msg("intro already played, staying in orbit mode")
		d.transitionLocked(ModeOrbit, "intro already played")
		return nil
	}

	d.armLocked(ctx, seq)
	d.transitionLocked(ModeCinematic, "first visit")
	log.Info().Str("sequence", seq.Name()).Float64("duration_s", seq.Duration()).Msg("starting cinematic intro")
	return nil
}

// Replay restarts the named sequence regardless of the intro flag and
// enters cinematic mode.
func (d *Director) Replay(ctx context.Context, seq *cinematic.Sequence) {
	log := logging.FromContext(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.armLocked(ctx, seq)
	d.transitionLocked(ModeCinematic, "replay")
	log.Info().Str("sequence", seq.Name()).Msg("replaying sequence")
}

// armLocked installs a fresh sequencer whose completion callback marks
// the intro played and hands the camera back to orbit mode.
func (d *Director) armLocked(ctx context.Context, seq *cinematic.Sequence) {
	name := seq.Name()
	d.seqName = name
	d.sequencer = cinematic.NewSequencer(seq, func() {
		d.onComplete(ctx, name)
	})
}

// onComplete runs exactly once per cinematic run, from inside the
// sequencer's completion path.
func (d *Director) onComplete(ctx context.Context, sequence string) {
	log := logging.FromContext(ctx)

	if err := d.store.MarkIntroPlayed(ctx, sequence); err != nil {
		log.Error().Err(err).Str("sequence", sequence).Msg("failed to persist intro flag")
	}

	d.mu.Lock()
	d.transitionLocked(ModeOrbit, "sequence completed")
	d.mu.Unlock()

	log.Info().Str("sequence", sequence).Msg("cinematic sequence completed")
}

// Tick advances the active sequence and applies the resulting camera
// pose to the rig. Outside cinematic mode it does nothing.
func (d *Director) Tick(now time.Time) {
	d.mu.Lock()
	if d.mode != ModeCinematic || d.sequencer == nil {
		d.mu.Unlock()
		return
	}
	seq := d.sequencer
	d.mu.Unlock()

	// Tick outside the director lock: completion re-enters through
	// onComplete, which takes it.
	state := seq.Tick(now)
	d.rig.Apply(state)
}

// Skip abandons the remainder of the active sequence. The sequencer
// jumps to its final pose and completion fires as if playback finished
// naturally, so the intro flag is still recorded.
func (d *Director) Skip() {
	d.mu.Lock()
	seq := d.sequencer
	d.mu.Unlock()

	if seq == nil {
		return
	}
	seq.Skip()
	d.rig.Apply(seq.Sequence().Advance(seq.Sequence().Duration()))
}

func (d *Director) transitionLocked(to CameraMode, reason string) {
	if to == d.mode {
		return
	}
	d.history = append(d.history, Transition{
		From:      d.mode,
		To:        to,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	if len(d.history) > transitionHistorySize {
		d.history = d.history[len(d.history)-transitionHistorySize:]
	}
	d.mode = to
}
