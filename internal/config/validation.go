// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/dollycam/dolly/internal/quality"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Logging.Format {
	case "", "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got: %s)", config.Logging.Format))
	}

	if config.Quality.ForceTier != "" && !quality.Tier(config.Quality.ForceTier).Valid() {
		validationErrors = append(validationErrors, fmt.Sprintf("quality.force_tier must be one of: low, medium, high, ultra (got: %s)", config.Quality.ForceTier))
	}

	th := config.Quality.Thresholds
	if th.MemoryHighGB < 0 || th.MemoryMidGB < 0 {
		validationErrors = append(validationErrors, "quality.thresholds memory cut points must be non-negative")
	}
	if th.MemoryHighGB > 0 && th.MemoryMidGB > 0 && th.MemoryHighGB <= th.MemoryMidGB {
		validationErrors = append(validationErrors, "quality.thresholds.memory_high_gb must exceed memory_mid_gb")
	}
	if th.CoresHigh > 0 && th.CoresMid > 0 && th.CoresHigh <= th.CoresMid {
		validationErrors = append(validationErrors, "quality.thresholds.cores_high must exceed cores_mid")
	}
	if th.TextureHigh > 0 && th.TextureMid > 0 && th.TextureHigh <= th.TextureMid {
		validationErrors = append(validationErrors, "quality.thresholds.texture_high must exceed texture_mid")
	}
	if th.UltraScore > 0 && th.HighScore > 0 && th.UltraScore <= th.HighScore {
		validationErrors = append(validationErrors, "quality.thresholds.ultra_score must exceed high_score")
	}
	if th.HighScore > 0 && th.MediumScore > 0 && th.HighScore <= th.MediumScore {
		validationErrors = append(validationErrors, "quality.thresholds.high_score must exceed medium_score")
	}

	if config.Cinematic.TickRate < 1 || config.Cinematic.TickRate > 240 {
		validationErrors = append(validationErrors, fmt.Sprintf("cinematic.tick_rate must be between 1 and 240 (got: %d)", config.Cinematic.TickRate))
	}

	seen := make(map[string]bool, len(config.Cinematic.Sequences))
	for _, seq := range config.Cinematic.Sequences {
		if seq.Name == "" {
			validationErrors = append(validationErrors, "cinematic.sequences entries must be named")
			continue
		}
		if seen[seq.Name] {
			validationErrors = append(validationErrors, fmt.Sprintf("duplicate sequence name: %s", seq.Name))
			continue
		}
		seen[seq.Name] = true

		// Building performs the structural checks: at least one keyframe,
		// positive total duration, known easings.
		if _, err := seq.Build(); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("sequence %q: %v", seq.Name, err))
		}
	}

	if config.Cinematic.DefaultSequence != "" && !seen[config.Cinematic.DefaultSequence] {
		validationErrors = append(validationErrors, fmt.Sprintf("cinematic.default_sequence %q is not defined in cinematic.sequences", config.Cinematic.DefaultSequence))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}
