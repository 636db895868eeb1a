package cinematic

// Easing names a monotonic remapping of linear progress. The quadratic
// formulations are the standard ones; all map 0 to 0 and 1 to 1.
type Easing string

const (
	EasingLinear Easing = "linear"
	EasingIn     Easing = "easeIn"
	EasingOut    Easing = "easeOut"
	EasingInOut  Easing = "easeInOut"
)

// Valid reports whether e names a known easing function.
// The empty string is valid and treated as linear.
func (e Easing) Valid() bool {
	switch e {
	case "", EasingLinear, EasingIn, EasingOut, EasingInOut:
		return true
	default:
		return false
	}
}

// Apply remaps linear progress t through the easing curve.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EasingIn:
		return t * t
	case EasingOut:
		return t * (2 - t)
	case EasingInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default: // linear or empty
		return t
	}
}
