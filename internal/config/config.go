// Package config handles loading, watching, and validating dolly's
// TOML configuration.
package config

import (
	"github.com/dollycam/dolly/internal/cinematic"
	"github.com/dollycam/dolly/internal/quality"
)

// Config is the root configuration structure.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" json:"database"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging"`
	Quality   QualityConfig   `mapstructure:"quality" json:"quality"`
	Cinematic CinematicConfig `mapstructure:"cinematic" json:"cinematic"`
}

// DatabaseConfig locates the playback state database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// QualityConfig tunes tier classification.
type QualityConfig struct {
	// ForceTier overrides classification entirely: "", "low", "medium",
	// "high" or "ultra". Empty means classify from the survey.
	ForceTier string `mapstructure:"force_tier" json:"force_tier"`

	// Thresholds override the classifier cut points. Zero-valued fields
	// keep their defaults.
	Thresholds quality.Thresholds `mapstructure:"thresholds" json:"thresholds"`
}

// ResolvedThresholds merges configured thresholds over the defaults.
func (q QualityConfig) ResolvedThresholds() quality.Thresholds {
	th := quality.DefaultThresholds()
	if q.Thresholds.MemoryHighGB > 0 {
		th.MemoryHighGB = q.Thresholds.MemoryHighGB
	}
	if q.Thresholds.MemoryMidGB > 0 {
		th.MemoryMidGB = q.Thresholds.MemoryMidGB
	}
	if q.Thresholds.CoresHigh > 0 {
		th.CoresHigh = q.Thresholds.CoresHigh
	}
	if q.Thresholds.CoresMid > 0 {
		th.CoresMid = q.Thresholds.CoresMid
	}
	if q.Thresholds.TextureHigh > 0 {
		th.TextureHigh = q.Thresholds.TextureHigh
	}
	if q.Thresholds.TextureMid > 0 {
		th.TextureMid = q.Thresholds.TextureMid
	}
	if q.Thresholds.UltraScore > 0 {
		th.UltraScore = q.Thresholds.UltraScore
	}
	if q.Thresholds.HighScore > 0 {
		th.HighScore = q.Thresholds.HighScore
	}
	if q.Thresholds.MediumScore > 0 {
		th.MediumScore = q.Thresholds.MediumScore
	}
	if q.Thresholds.MobileWidth > 0 {
		th.MobileWidth = q.Thresholds.MobileWidth
	}
	return th
}

// CinematicConfig holds the authored sequence library.
type CinematicConfig struct {
	// DefaultSequence is played on first visit.
	DefaultSequence string `mapstructure:"default_sequence" json:"default_sequence"`

	// TickRate is the playback tick rate in frames per second for the
	// built-in player.
	TickRate int `mapstructure:"tick_rate" json:"tick_rate"`

	Sequences []SequenceConfig `mapstructure:"sequences" json:"sequences"`
}

// SequenceConfig is one authored camera path.
type SequenceConfig struct {
	Name      string           `mapstructure:"name" json:"name"`
	Keyframes []KeyframeConfig `mapstructure:"keyframes" json:"keyframes"`
}

// KeyframeConfig is the TOML shape of a keyframe.
type KeyframeConfig struct {
	Position []float64 `mapstructure:"position" json:"position"`
	Target   []float64 `mapstructure:"target" json:"target"`
	FOV      float64   `mapstructure:"fov" json:"fov"`
	Duration float64   `mapstructure:"duration" json:"duration"`
	Easing   string    `mapstructure:"easing" json:"easing"`
}

// DefaultConfig returns the stock configuration, including the default
// intro sequence.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Quality: QualityConfig{
			ForceTier: "",
		},
		Cinematic: CinematicConfig{
			DefaultSequence: "intro",
			TickRate:        60,
			Sequences: []SequenceConfig{
				{
					Name: "intro",
					Keyframes: []KeyframeConfig{
						{Position: []float64{0, 40, 120}, Target: []float64{0, 0, 0}, FOV: 60, Duration: 0},
						{Position: []float64{60, 25, 60}, Target: []float64{0, 5, 0}, FOV: 55, Duration: 4, Easing: "easeInOut"},
						{Position: []float64{20, 12, 30}, Target: []float64{0, 8, 0}, FOV: 50, Duration: 4, Easing: "easeInOut"},
						{Position: []float64{0, 10, 24}, Target: []float64{0, 8, 0}, FOV: 50, Duration: 2, Easing: "easeOut"},
					},
				},
			},
		},
	}
}

func vec3FromSlice(v []float64) cinematic.Vec3 {
	out := cinematic.Vec3{}
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	if len(v) > 2 {
		out.Z = v[2]
	}
	return out
}

// Build converts the config shape into a validated sequence.
func (s SequenceConfig) Build() (*cinematic.Sequence, error) {
	keyframes := make([]cinematic.Keyframe, len(s.Keyframes))
	for i, kf := range s.Keyframes {
		keyframes[i] = cinematic.Keyframe{
			Position: vec3FromSlice(kf.Position),
			Target:   vec3FromSlice(kf.Target),
			FOV:      kf.FOV,
			Duration: kf.Duration,
			Easing:   cinematic.Easing(kf.Easing),
		}
	}
	return cinematic.NewSequence(s.Name, keyframes)
}

// Sequence returns the named sequence config, or nil when absent.
func (c CinematicConfig) Sequence(name string) *SequenceConfig {
	for i := range c.Sequences {
		if c.Sequences[i].Name == name {
			return &c.Sequences[i]
		}
	}
	return nil
}
