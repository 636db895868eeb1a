package port

import (
	"context"

	"github.com/dollycam/dolly/internal/quality"
)

// PlaybackStore persists playback state across runs: whether a cinematic
// sequence has already played (so it does not replay on every visit) and a
// small history of capability surveys for diagnostics.
type PlaybackStore interface {
	// IntroPlayed reports whether the named sequence has completed before.
	IntroPlayed(ctx context.Context, sequence string) (bool, error)

	// MarkIntroPlayed records a completed run of the named sequence.
	MarkIntroPlayed(ctx context.Context, sequence string) error

	// ClearIntroPlayed resets the flag so the sequence replays next run.
	ClearIntroPlayed(ctx context.Context, sequence string) error

	// RecordSurvey appends a capability snapshot to the survey history.
	RecordSurvey(ctx context.Context, snap quality.Snapshot) error

	// LastSurvey returns the most recent recorded snapshot, or nil when
	// none has been recorded yet.
	LastSurvey(ctx context.Context) (*quality.Snapshot, error)
}
