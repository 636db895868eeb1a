package cinematic

import (
	"errors"
	"fmt"
)

// Sequence construction errors. These are authoring mistakes, caught at
// construction so they can never reach Advance.
var (
	ErrEmptySequence    = errors.New("sequence has no keyframes")
	ErrZeroDuration     = errors.New("sequence total duration is zero")
	ErrNegativeDuration = errors.New("keyframe duration is negative")
	ErrUnknownEasing    = errors.New("unknown easing function")
)

// Keyframe is an authored camera pose. Duration is the travel time in
// seconds from the previous keyframe's pose to this one; the first
// keyframe's duration is an initial hold at its own pose (usually zero).
// A keyframe that repeats the previous pose produces a dwell.
type Keyframe struct {
	Position Vec3
	Target   Vec3
	FOV      float64
	Duration float64
	Easing   Easing
}

// CameraState is the interpolated pose for one frame. It is derived, never
// stored: a pure function of (Sequence, elapsed time).
type CameraState struct {
	Position Vec3
	Target   Vec3
	FOV      float64
}

// Sequence is a validated, immutable list of keyframes.
type Sequence struct {
	name      string
	keyframes []Keyframe
	total     float64
}

// NewSequence validates the keyframe list and returns an immutable
// sequence. The keyframes are copied; later mutation of the input slice
// does not affect the sequence.
func NewSequence(name string, keyframes []Keyframe) (*Sequence, error) {
	if len(keyframes) == 0 {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrEmptySequence)
	}

	var total float64
	for i, kf := range keyframes {
		if kf.Duration < 0 {
			return nil, fmt.Errorf("sequence %q keyframe %d: %w", name, i, ErrNegativeDuration)
		}
		if !kf.Easing.Valid() {
			return nil, fmt.Errorf("sequence %q keyframe %d: %w: %q", name, i, ErrUnknownEasing, kf.Easing)
		}
		total += kf.Duration
	}
	if total == 0 {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrZeroDuration)
	}

	kfs := make([]Keyframe, len(keyframes))
	copy(kfs, keyframes)

	return &Sequence{name: name, keyframes: kfs, total: total}, nil
}

// Name returns the sequence's authored name.
func (s *Sequence) Name() string { return s.name }

// Duration returns the total duration in seconds.
func (s *Sequence) Duration() float64 { return s.total }

// Len returns the number of keyframes.
func (s *Sequence) Len() int { return len(s.keyframes) }

// Keyframes returns a copy of the keyframe list.
func (s *Sequence) Keyframes() []Keyframe {
	kfs := make([]Keyframe, len(s.keyframes))
	copy(kfs, s.keyframes)
	return kfs
}

// Advance computes the camera pose for the given elapsed time. It is a pure
// function: identical inputs yield identical results. Negative elapsed is
// clamped to zero; elapsed beyond the total duration holds the final
// keyframe's pose with no extrapolation.
func (s *Sequence) Advance(elapsed float64) CameraState {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > s.total {
		elapsed = s.total
	}

	// Walk the keyframes accumulating duration. A boundary belongs to the
	// following segment, which falls out of the strict comparison: elapsed
	// exactly at the end of a segment moves on to the next one.
	var acc float64
	prev := s.keyframes[0]
	for _, kf := range s.keyframes {
		segStart := acc
		acc += kf.Duration
		if elapsed < acc {
			t := kf.Easing.Apply((elapsed - segStart) / kf.Duration)
			return CameraState{
				Position: prev.Position.Lerp(kf.Position, t),
				Target:   prev.Target.Lerp(kf.Target, t),
				FOV:      lerp(prev.FOV, kf.FOV, t),
			}
		}
		prev = kf
	}

	// elapsed == total: saturate at the final keyframe.
	last := s.keyframes[len(s.keyframes)-1]
	return CameraState{Position: last.Position, Target: last.Target, FOV: last.FOV}
}

// Progress returns elapsed normalized to [0,1].
func (s *Sequence) Progress(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	p := elapsed / s.total
	if p > 1 {
		return 1
	}
	return p
}
