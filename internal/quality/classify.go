package quality

// Tier is a discrete rendering fidelity level.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
	TierUltra  Tier = "ultra"
)

// Valid reports whether t names a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh, TierUltra:
		return true
	default:
		return false
	}
}

// Tiers lists all tiers from lowest to highest fidelity.
func Tiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh, TierUltra}
}

// Thresholds are the cut points of the capability score. They are empirical
// tuning values, not derived requirements: the defaults match common
// desktop hardware generations and are overridable from config.
type Thresholds struct {
	// Per-signal cut points. A signal scores 3 at or above High, 2 at or
	// above Mid, otherwise 1.
	MemoryHighGB float64 `mapstructure:"memory_high_gb" json:"memory_high_gb"`
	MemoryMidGB  float64 `mapstructure:"memory_mid_gb" json:"memory_mid_gb"`
	CoresHigh    int     `mapstructure:"cores_high" json:"cores_high"`
	CoresMid     int     `mapstructure:"cores_mid" json:"cores_mid"`
	TextureHigh  int     `mapstructure:"texture_high" json:"texture_high"`
	TextureMid   int     `mapstructure:"texture_mid" json:"texture_mid"`

	// Summed-score cut points for the tier mapping.
	UltraScore  int `mapstructure:"ultra_score" json:"ultra_score"`
	HighScore   int `mapstructure:"high_score" json:"high_score"`
	MediumScore int `mapstructure:"medium_score" json:"medium_score"`

	// Viewports narrower than MobileWidth get the mobile particle
	// discount in Budget.ForViewport.
	MobileWidth int `mapstructure:"mobile_width" json:"mobile_width"`
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MemoryHighGB: 8,
		MemoryMidGB:  4,
		CoresHigh:    8,
		CoresMid:     4,
		TextureHigh:  8192,
		TextureMid:   4096,
		UltraScore:   8,
		HighScore:    6,
		MediumScore:  4,
		MobileWidth:  768,
	}
}

// Score computes the summed capability score. Each of memory, cores and
// texture size contributes 1-3 points, so the result is always in [3,9].
func Score(caps DeviceCapabilities, th Thresholds) int {
	score := 0

	switch {
	case caps.MemoryGB >= th.MemoryHighGB:
		score += 3
	case caps.MemoryGB >= th.MemoryMidGB:
		score += 2
	default:
		score++
	}

	switch {
	case caps.CPUCores >= th.CoresHigh:
		score += 3
	case caps.CPUCores >= th.CoresMid:
		score += 2
	default:
		score++
	}

	switch {
	case caps.MaxTextureSize >= th.TextureHigh:
		score += 3
	case caps.MaxTextureSize >= th.TextureMid:
		score += 2
	default:
		score++
	}

	return score
}

// Classify maps capabilities to a tier. Pure and total: every capability
// combination maps to exactly one of the four tiers.
func Classify(caps DeviceCapabilities, th Thresholds) Tier {
	score := Score(caps, th)
	switch {
	case score >= th.UltraScore:
		return TierUltra
	case score >= th.HighScore:
		return TierHigh
	case score >= th.MediumScore:
		return TierMedium
	default:
		return TierLow
	}
}
