package quality

import "fmt"

// Budget holds the renderer configuration knobs for one tier. The table is
// static and read-only at runtime; hosts copy values into their renderer
// setup and never write back.
type Budget struct {
	// Device pixel ratio is clamped into [MinPixelRatio, MaxPixelRatio]
	// before being handed to the renderer.
	MinPixelRatio float64 `json:"min_pixel_ratio"`
	MaxPixelRatio float64 `json:"max_pixel_ratio"`

	Antialias     bool `json:"antialias"`
	Shadows       bool `json:"shadows"`
	ShadowMapSize int  `json:"shadow_map_size"`

	// PerformanceFloor is the frame rate below which the host should
	// consider stepping the tier down.
	PerformanceFloor float64 `json:"performance_floor"`

	// ParticleMultiplier scales authored particle counts.
	ParticleMultiplier float64 `json:"particle_multiplier"`
}

var budgets = map[Tier]Budget{
	TierLow: {
		MinPixelRatio:      1,
		MaxPixelRatio:      1,
		Antialias:          false,
		Shadows:            false,
		ShadowMapSize:      512,
		PerformanceFloor:   24,
		ParticleMultiplier: 0.25,
	},
	TierMedium: {
		MinPixelRatio:      1,
		MaxPixelRatio:      1.5,
		Antialias:          true,
		Shadows:            false,
		ShadowMapSize:      1024,
		PerformanceFloor:   30,
		ParticleMultiplier: 0.5,
	},
	TierHigh: {
		MinPixelRatio:      1,
		MaxPixelRatio:      2,
		Antialias:          true,
		Shadows:            true,
		ShadowMapSize:      2048,
		PerformanceFloor:   45,
		ParticleMultiplier: 1,
	},
	TierUltra: {
		MinPixelRatio:      1,
		MaxPixelRatio:      2,
		Antialias:          true,
		Shadows:            true,
		ShadowMapSize:      4096,
		PerformanceFloor:   60,
		ParticleMultiplier: 1.5,
	},
}

// BudgetFor returns the render budget for a tier. An unknown tier is a
// programming error, not a runtime condition.
func BudgetFor(tier Tier) Budget {
	b, ok := budgets[tier]
	if !ok {
		panic(fmt.Sprintf("quality: no budget for tier %q", tier))
	}
	return b
}

// ForViewport applies per-device discounts to a tier budget: narrow or
// touch-first viewports get half the particle multiplier, and the pixel
// ratio range is tightened to the device's actual ratio where it already
// fits.
func (b Budget) ForViewport(caps DeviceCapabilities, th Thresholds) Budget {
	if caps.ViewportWidth < th.MobileWidth || (caps.TouchPoints > 0 && caps.ViewportWidth < caps.ViewportHeight) {
		b.ParticleMultiplier /= 2
	}
	if caps.PixelRatio < b.MaxPixelRatio && caps.PixelRatio >= b.MinPixelRatio {
		b.MaxPixelRatio = caps.PixelRatio
	}
	return b
}

// ClampPixelRatio clamps a device pixel ratio into the budget's range.
func (b Budget) ClampPixelRatio(ratio float64) float64 {
	if ratio < b.MinPixelRatio {
		return b.MinPixelRatio
	}
	if ratio > b.MaxPixelRatio {
		return b.MaxPixelRatio
	}
	return ratio
}
