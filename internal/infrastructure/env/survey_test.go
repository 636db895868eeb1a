package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dollycam/dolly/internal/quality"
)

func TestSurvey_NeverReturnsZeroFields(t *testing.T) {
	s := NewSurveyor()
	caps := s.Survey(context.Background())

	assert.Greater(t, caps.MemoryGB, 0.0, "memory must have a fallback")
	assert.Greater(t, caps.CPUCores, 0, "cores must have a fallback")
	assert.Greater(t, caps.MaxTextureSize, 0, "texture size must have a fallback")
	assert.Greater(t, caps.PixelRatio, 0.0, "pixel ratio must have a fallback")
	assert.Greater(t, caps.ViewportWidth, 0, "viewport width must have a fallback")
	assert.Greater(t, caps.ViewportHeight, 0, "viewport height must have a fallback")
	assert.GreaterOrEqual(t, caps.TouchPoints, 0)
}

func TestSurvey_CachesResult(t *testing.T) {
	s := NewSurveyor()
	ctx := context.Background()

	first := s.Survey(ctx)
	second := s.Survey(ctx)
	assert.Equal(t, first, second, "repeated surveys must return the cached value")
}

func TestResurvey_PicksUpViewportChange(t *testing.T) {
	s := NewSurveyor()
	ctx := context.Background()

	t.Setenv("DOLLY_VIEWPORT", "1920x1080")
	first := s.Survey(ctx)
	require.Equal(t, 1920, first.ViewportWidth)

	// A plain Survey keeps the cache even though the environment changed.
	t.Setenv("DOLLY_VIEWPORT", "390x844")
	assert.Equal(t, 1920, s.Survey(ctx).ViewportWidth)

	// Resurvey is the explicit re-evaluation trigger.
	fresh := s.Resurvey(ctx)
	assert.Equal(t, 390, fresh.ViewportWidth)
	assert.Equal(t, 844, fresh.ViewportHeight)
}

func TestDetectViewport_MalformedValues(t *testing.T) {
	s := NewSurveyor()

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no separator", "1920"},
		{"garbage", "wide-by-tall"},
		{"negative", "-100x200"},
		{"zero", "0x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOLLY_VIEWPORT", tt.value)
			w, h := s.detectViewport()
			assert.Zero(t, w)
			assert.Zero(t, h)
		})
	}
}

func TestDetectPixelRatio_FromEnvironment(t *testing.T) {
	s := NewSurveyor()

	t.Setenv("GDK_SCALE", "")
	t.Setenv("QT_SCALE_FACTOR", "")
	assert.Zero(t, s.detectPixelRatio(), "no scale env should report zero for normalization")

	t.Setenv("GDK_SCALE", "2")
	assert.Equal(t, 2.0, s.detectPixelRatio())

	t.Setenv("GDK_SCALE", "not-a-number")
	t.Setenv("QT_SCALE_FACTOR", "1.5")
	assert.Equal(t, 1.5, s.detectPixelRatio())
}

func TestSurvey_NormalizedAgainstFallbacks(t *testing.T) {
	// Whatever the host machine looks like, the survey must satisfy the
	// same invariant Normalize enforces.
	s := NewSurveyor()
	caps := s.Survey(context.Background())
	assert.Equal(t, caps, caps.Normalize(), "survey output must already be normalized")

	// And classification over the result is total.
	tier := quality.Classify(caps, quality.DefaultThresholds())
	assert.True(t, tier.Valid())
}
