package cinematic

import (
	"errors"
	"math"
	"testing"
)

const posTolerance = 1e-9

func approxVec(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < posTolerance &&
		math.Abs(a.Y-b.Y) < posTolerance &&
		math.Abs(a.Z-b.Z) < posTolerance
}

// introSequence builds the canonical two-segment test path:
// (0,0,0) -> (10,0,0) over 2s, then -> (10,10,0) over 3s, linear easing.
func introSequence(t *testing.T) *Sequence {
	t.Helper()
	seq, err := NewSequence("intro", []Keyframe{
		{Position: Vec3{0, 0, 0}, Target: Vec3{0, 0, -1}, FOV: 60, Duration: 0, Easing: EasingLinear},
		{Position: Vec3{10, 0, 0}, Target: Vec3{0, 0, -1}, FOV: 60, Duration: 2, Easing: EasingLinear},
		{Position: Vec3{10, 10, 0}, Target: Vec3{0, 0, -1}, FOV: 45, Duration: 3, Easing: EasingLinear},
	})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return seq
}

func TestNewSequence_RejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		keyframes []Keyframe
		wantErr   error
	}{
		{
			name:      "zero keyframes",
			keyframes: nil,
			wantErr:   ErrEmptySequence,
		},
		{
			name: "all zero durations",
			keyframes: []Keyframe{
				{Position: Vec3{0, 0, 0}},
				{Position: Vec3{1, 0, 0}},
			},
			wantErr: ErrZeroDuration,
		},
		{
			name: "negative duration",
			keyframes: []Keyframe{
				{Position: Vec3{0, 0, 0}, Duration: 2},
				{Position: Vec3{1, 0, 0}, Duration: -1},
			},
			wantErr: ErrNegativeDuration,
		},
		{
			name: "unknown easing",
			keyframes: []Keyframe{
				{Position: Vec3{0, 0, 0}, Duration: 1, Easing: "bounce"},
			},
			wantErr: ErrUnknownEasing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSequence("bad", tt.keyframes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewSequence_SingleKeyframeHold(t *testing.T) {
	seq, err := NewSequence("hold", []Keyframe{
		{Position: Vec3{1, 2, 3}, Target: Vec3{0, 0, 0}, FOV: 50, Duration: 4},
	})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	for _, elapsed := range []float64{0, 2, 4, 100} {
		state := seq.Advance(elapsed)
		if !approxVec(state.Position, Vec3{1, 2, 3}) {
			t.Errorf("at %v: expected held position (1,2,3), got %+v", elapsed, state.Position)
		}
		if state.FOV != 50 {
			t.Errorf("at %v: expected FOV 50, got %v", elapsed, state.FOV)
		}
	}
}

func TestAdvance_SegmentInterpolation(t *testing.T) {
	seq := introSequence(t)

	tests := []struct {
		name    string
		elapsed float64
		wantPos Vec3
	}{
		{"start", 0, Vec3{0, 0, 0}},
		{"mid first segment", 1.0, Vec3{5, 0, 0}},
		{"segment boundary", 2.0, Vec3{10, 0, 0}},
		{"into second segment", 4.0, Vec3{10, 10 * (2.0 / 3.0), 0}},
		{"exact end", 5.0, Vec3{10, 10, 0}},
		{"beyond end", 10.0, Vec3{10, 10, 0}},
		{"negative clamped", -3.0, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := seq.Advance(tt.elapsed)
			if !approxVec(state.Position, tt.wantPos) {
				t.Errorf("Advance(%v): expected position %+v, got %+v", tt.elapsed, tt.wantPos, state.Position)
			}
		})
	}
}

func TestAdvance_BoundaryPoses(t *testing.T) {
	seq := introSequence(t)

	first := seq.Advance(0)
	if !approxVec(first.Position, Vec3{0, 0, 0}) || first.FOV != 60 {
		t.Errorf("Advance(0) should return first keyframe pose, got %+v", first)
	}

	last := seq.Advance(seq.Duration())
	if !approxVec(last.Position, Vec3{10, 10, 0}) || last.FOV != 45 {
		t.Errorf("Advance(total) should return last keyframe pose, got %+v", last)
	}

	// No extrapolation past the end.
	beyond := seq.Advance(seq.Duration() * 3)
	if beyond != last {
		t.Errorf("Advance beyond total should hold last pose: got %+v, want %+v", beyond, last)
	}
}

func TestAdvance_FOVInterpolation(t *testing.T) {
	seq := introSequence(t)

	// FOV is constant (60) through the first segment, then 60 -> 45.
	state := seq.Advance(3.5) // halfway through second segment
	if math.Abs(state.FOV-52.5) > posTolerance {
		t.Errorf("expected FOV 52.5 at segment midpoint, got %v", state.FOV)
	}
}

func TestAdvance_Deterministic(t *testing.T) {
	seq := introSequence(t)

	for _, elapsed := range []float64{0, 0.1, 1.7, 2.0, 3.3333, 4.999, 5.0, 8.2} {
		a := seq.Advance(elapsed)
		b := seq.Advance(elapsed)
		if a != b {
			t.Errorf("Advance(%v) not deterministic: %+v vs %+v", elapsed, a, b)
		}
	}
}

func TestAdvance_DwellOnRepeatedPose(t *testing.T) {
	// Middle keyframe repeats the previous pose, producing a 2s dwell.
	seq, err := NewSequence("dwell", []Keyframe{
		{Position: Vec3{0, 0, 0}, FOV: 60, Duration: 0},
		{Position: Vec3{5, 0, 0}, FOV: 60, Duration: 1, Easing: EasingLinear},
		{Position: Vec3{5, 0, 0}, FOV: 60, Duration: 2, Easing: EasingLinear},
		{Position: Vec3{5, 5, 0}, FOV: 60, Duration: 1, Easing: EasingLinear},
	})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	for _, elapsed := range []float64{1.0, 1.5, 2.9} {
		state := seq.Advance(elapsed)
		if !approxVec(state.Position, Vec3{5, 0, 0}) {
			t.Errorf("at %v: expected dwell at (5,0,0), got %+v", elapsed, state.Position)
		}
	}
}

func TestSequence_Progress(t *testing.T) {
	seq := introSequence(t)

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{-1, 0},
		{0, 0},
		{2.5, 0.5},
		{5, 1},
		{50, 1},
	}

	for _, tt := range tests {
		if got := seq.Progress(tt.elapsed); math.Abs(got-tt.want) > posTolerance {
			t.Errorf("Progress(%v): expected %v, got %v", tt.elapsed, tt.want, got)
		}
	}
}

func TestSequence_KeyframesCopied(t *testing.T) {
	input := []Keyframe{
		{Position: Vec3{0, 0, 0}, Duration: 1},
	}
	seq, err := NewSequence("copy", input)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	input[0].Position = Vec3{99, 99, 99}

	if got := seq.Advance(0).Position; !approxVec(got, Vec3{0, 0, 0}) {
		t.Errorf("sequence should be immune to input mutation, got %+v", got)
	}
}
