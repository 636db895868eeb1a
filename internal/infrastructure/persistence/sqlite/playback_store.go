package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dollycam/dolly/internal/application/port"
	"github.com/dollycam/dolly/internal/quality"
)

// surveyHistoryLimit caps the survey history; older rows are pruned on
// insert so the table cannot grow without bound.
const surveyHistoryLimit = 50

// PlaybackStore implements port.PlaybackStore on SQLite.
type PlaybackStore struct {
	db *sql.DB
}

// NewPlaybackStore wraps an open database connection.
func NewPlaybackStore(db *sql.DB) *PlaybackStore {
	return &PlaybackStore{db: db}
}

// IntroPlayed reports whether the named sequence has completed before.
// A sequence never seen reports false.
func (s *PlaybackStore) IntroPlayed(ctx context.Context, sequence string) (bool, error) {
	var played bool
	err := s.db.QueryRowContext(ctx,
		"SELECT intro_played FROM playback_state WHERE sequence = ?", sequence,
	).Scan(&played)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query playback state: %w", err)
	}
	return played, nil
}

// MarkIntroPlayed records a completed run of the named sequence and bumps
// its play count.
func (s *PlaybackStore) MarkIntroPlayed(ctx context.Context, sequence string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO playback_state (sequence, intro_played, play_count, updated_at)
VALUES (?, 1, 1, ?)
ON CONFLICT(sequence) DO UPDATE SET
	intro_played = 1,
	play_count = play_count + 1,
	updated_at = excluded.updated_at`,
		sequence, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to mark intro played: %w", err)
	}
	return nil
}

// ClearIntroPlayed resets the flag so the sequence replays next run.
// The play count is preserved.
func (s *PlaybackStore) ClearIntroPlayed(ctx context.Context, sequence string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE playback_state SET intro_played = 0, updated_at = ? WHERE sequence = ?",
		time.Now().UTC().Format(time.RFC3339), sequence)
	if err != nil {
		return fmt.Errorf("failed to clear intro flag: %w", err)
	}
	return nil
}

// PlayCount returns how many times the named sequence has completed.
func (s *PlaybackStore) PlayCount(ctx context.Context, sequence string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT play_count FROM playback_state WHERE sequence = ?", sequence,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query play count: %w", err)
	}
	return count, nil
}

// RecordSurvey appends a capability snapshot to the survey history and
// prunes rows beyond the retention limit.
func (s *PlaybackStore) RecordSurvey(ctx context.Context, snap quality.Snapshot) error {
	capsJSON, err := json.Marshal(snap.Capabilities)
	if err != nil {
		return fmt.Errorf("failed to encode capabilities: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO survey_history (taken_at, tier, score, capabilities) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), string(snap.Tier), snap.Score, string(capsJSON))
	if err != nil {
		return fmt.Errorf("failed to record survey: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
DELETE FROM survey_history WHERE id NOT IN (
	SELECT id FROM survey_history ORDER BY id DESC LIMIT ?
)`, surveyHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to prune survey history: %w", err)
	}
	return nil
}

// LastSurvey returns the most recent recorded snapshot, or nil when none
// has been recorded yet. The budget is re-derived from the stored tier so
// the snapshot round-trips without persisting the whole budget table.
func (s *PlaybackStore) LastSurvey(ctx context.Context) (*quality.Snapshot, error) {
	var (
		tier     string
		score    int
		capsJSON string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT tier, score, capabilities FROM survey_history ORDER BY id DESC LIMIT 1",
	).Scan(&tier, &score, &capsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query survey history: %w", err)
	}

	var caps quality.DeviceCapabilities
	if err := json.Unmarshal([]byte(capsJSON), &caps); err != nil {
		return nil, fmt.Errorf("failed to decode capabilities: %w", err)
	}

	snap := &quality.Snapshot{
		Capabilities: caps,
		Score:        score,
		Tier:         quality.Tier(tier),
	}
	if snap.Tier.Valid() {
		snap.Budget = quality.BudgetFor(snap.Tier)
	}
	return snap, nil
}

var _ port.PlaybackStore = (*PlaybackStore)(nil)
