// Package quality derives a discrete rendering quality tier and concrete
// render budgets from a one-shot survey of device capabilities. The mapping
// is a pure, total function: every capability combination lands on exactly
// one tier, and probes that fail upstream arrive here as documented
// fallback values, never as zero or missing fields.
package quality

// Fallback values substituted when a capability probe is unavailable.
// Chosen to land mid-range so an unprobeable machine gets a usable, not
// punitive, tier.
const (
	FallbackMemoryGB       = 4.0
	FallbackCPUCores       = 4
	FallbackMaxTextureSize = 4096
	FallbackPixelRatio     = 1.0
	FallbackViewportWidth  = 1920
	FallbackViewportHeight = 1080
)

// DeviceCapabilities is the immutable result of one capability survey.
// All fields carry non-zero fallbacks so tier computation never branches
// on "unknown".
type DeviceCapabilities struct {
	MemoryGB       float64 `json:"memory_gb"`
	CPUCores       int     `json:"cpu_cores"`
	MaxTextureSize int     `json:"max_texture_size"`
	TouchPoints    int     `json:"touch_points"`
	PixelRatio     float64 `json:"pixel_ratio"`
	ViewportWidth  int     `json:"viewport_width"`
	ViewportHeight int     `json:"viewport_height"`
}

// Fallback returns capabilities built entirely from fallback constants,
// the value a survey degrades to when every probe fails.
func Fallback() DeviceCapabilities {
	return DeviceCapabilities{
		MemoryGB:       FallbackMemoryGB,
		CPUCores:       FallbackCPUCores,
		MaxTextureSize: FallbackMaxTextureSize,
		TouchPoints:    0,
		PixelRatio:     FallbackPixelRatio,
		ViewportWidth:  FallbackViewportWidth,
		ViewportHeight: FallbackViewportHeight,
	}
}

// Normalize substitutes fallback constants for any field left at its zero
// value, so partially filled survey results still satisfy the non-zero
// invariant. Touch points legitimately stay at zero.
func (c DeviceCapabilities) Normalize() DeviceCapabilities {
	if c.MemoryGB <= 0 {
		c.MemoryGB = FallbackMemoryGB
	}
	if c.CPUCores <= 0 {
		c.CPUCores = FallbackCPUCores
	}
	if c.MaxTextureSize <= 0 {
		c.MaxTextureSize = FallbackMaxTextureSize
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = FallbackPixelRatio
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = FallbackViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = FallbackViewportHeight
	}
	return c
}
