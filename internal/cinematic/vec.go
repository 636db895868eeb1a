// Package cinematic drives scripted camera paths: an authored list of
// keyframes is turned into a continuous camera pose as a pure function of
// elapsed time, and a small state machine tracks a single playback run from
// first tick to completion.
package cinematic

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
	Z float64 `mapstructure:"z" json:"z"`
}

// Lerp returns the linear interpolation between v and o at t.
// t is not clamped; callers pass eased progress in [0,1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
