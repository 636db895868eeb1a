// Package port defines interfaces for external dependencies.
package port

import (
	"context"

	"github.com/dollycam/dolly/internal/quality"
)

// HardwareSurveyor probes the machine for rendering-relevant capabilities.
// Implementations are best-effort and must never fail: a signal that cannot
// be read degrades to its documented fallback value.
type HardwareSurveyor interface {
	// Survey returns the cached capability snapshot, probing on first call.
	Survey(ctx context.Context) quality.DeviceCapabilities

	// Resurvey discards the cache and probes again. This is the explicit
	// re-evaluation trigger for viewport resize or orientation change.
	Resurvey(ctx context.Context) quality.DeviceCapabilities
}
