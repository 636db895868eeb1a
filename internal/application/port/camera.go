package port

import "github.com/dollycam/dolly/internal/cinematic"

// CameraRig is the imperative boundary to the live camera. The sequencer
// only produces CameraState values; applying them to a real camera object
// happens behind this interface, which keeps the interpolation logic
// testable without a rendering context.
type CameraRig interface {
	Apply(state cinematic.CameraState)
}
