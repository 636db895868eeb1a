package quality

import "sync"

// Snapshot bundles one survey's capabilities with the tier and budget
// derived from them. Snapshots are immutable values: re-detection publishes
// a new one rather than mutating in place, so a component holding a stale
// reference is never corrupted mid-read.
type Snapshot struct {
	Capabilities DeviceCapabilities `json:"capabilities"`
	Score        int                `json:"score"`
	Tier         Tier               `json:"tier"`
	Budget       Budget             `json:"budget"`
}

// Evaluate derives a full snapshot from capabilities. forceTier, when
// valid, overrides the classified tier (config escape hatch); the budget
// still gets the per-viewport discounts.
func Evaluate(caps DeviceCapabilities, th Thresholds, forceTier Tier) Snapshot {
	caps = caps.Normalize()

	tier := Classify(caps, th)
	if forceTier.Valid() {
		tier = forceTier
	}

	return Snapshot{
		Capabilities: caps,
		Score:        Score(caps, th),
		Tier:         tier,
		Budget:       BudgetFor(tier).ForViewport(caps, th),
	}
}

// Tracker holds the current snapshot and notifies subscribers when a
// re-survey (viewport resize, orientation change) produces a new one.
// This is the explicit re-evaluation trigger; there is no polling.
type Tracker struct {
	mu        sync.RWMutex
	current   Snapshot
	callbacks []func(Snapshot)

	thresholds Thresholds
	forceTier  Tier
}

// NewTracker creates a tracker seeded with an initial survey result.
func NewTracker(caps DeviceCapabilities, th Thresholds, forceTier Tier) *Tracker {
	return &Tracker{
		current:    Evaluate(caps, th, forceTier),
		thresholds: th,
		forceTier:  forceTier,
	}
}

// Current returns the latest snapshot.
func (t *Tracker) Current() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// OnChange registers a callback invoked with each newly published snapshot.
func (t *Tracker) OnChange(callback func(Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callbacks = append(t.callbacks, callback)
}

// Update re-evaluates from fresh capabilities and publishes the new
// snapshot. Subscribers are notified outside the lock.
func (t *Tracker) Update(caps DeviceCapabilities) Snapshot {
	t.mu.Lock()
	snap := Evaluate(caps, t.thresholds, t.forceTier)
	t.current = snap
	callbacks := make([]func(Snapshot), len(t.callbacks))
	copy(callbacks, t.callbacks)
	t.mu.Unlock()

	for _, callback := range callbacks {
		callback(snap)
	}
	return snap
}
