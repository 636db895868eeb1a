package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dollycam/dolly/internal/quality"
)

func testStore(t *testing.T) *PlaybackStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "dolly.db")
	db, err := NewConnection(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	return NewPlaybackStore(db)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := NewConnection(context.Background(), "")
	assert.Error(t, err)
}

func TestPlaybackStore_IntroFlagLifecycle(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// Unknown sequence: never played.
	played, err := store.IntroPlayed(ctx, "intro")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, store.MarkIntroPlayed(ctx, "intro"))

	played, err = store.IntroPlayed(ctx, "intro")
	require.NoError(t, err)
	assert.True(t, played)

	// Other sequences are independent.
	played, err = store.IntroPlayed(ctx, "fly-through")
	require.NoError(t, err)
	assert.False(t, played)

	// Clear resets the flag but keeps the count.
	require.NoError(t, store.ClearIntroPlayed(ctx, "intro"))
	played, err = store.IntroPlayed(ctx, "intro")
	require.NoError(t, err)
	assert.False(t, played)

	count, err := store.PlayCount(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPlaybackStore_PlayCountAccumulates(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.MarkIntroPlayed(ctx, "intro"))
	}

	count, err := store.PlayCount(ctx, "intro")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPlaybackStore_SurveyHistory(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	last, err := store.LastSurvey(ctx)
	require.NoError(t, err)
	assert.Nil(t, last, "no history yet")

	th := quality.DefaultThresholds()
	old := quality.Evaluate(quality.DeviceCapabilities{MemoryGB: 2, CPUCores: 2, MaxTextureSize: 2048, PixelRatio: 1}, th, "")
	require.NoError(t, store.RecordSurvey(ctx, old))

	fresh := quality.Evaluate(quality.DeviceCapabilities{MemoryGB: 16, CPUCores: 12, MaxTextureSize: 16384, PixelRatio: 2}, th, "")
	require.NoError(t, store.RecordSurvey(ctx, fresh))

	last, err = store.LastSurvey(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, quality.TierUltra, last.Tier)
	assert.Equal(t, fresh.Score, last.Score)
	assert.Equal(t, fresh.Capabilities, last.Capabilities)
	assert.Equal(t, quality.BudgetFor(quality.TierUltra), last.Budget)
}

func TestPlaybackStore_SurveyHistoryPruned(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	snap := quality.Evaluate(quality.Fallback(), quality.DefaultThresholds(), "")
	for i := 0; i < surveyHistoryLimit+10; i++ {
		require.NoError(t, store.RecordSurvey(ctx, snap))
	}

	var count int
	err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM survey_history").Scan(&count)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, surveyHistoryLimit)
}
