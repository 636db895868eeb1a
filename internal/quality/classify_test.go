package quality

import "testing"

func TestClassify_KnownMachines(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		caps DeviceCapabilities
		want Tier
	}{
		{
			name: "workstation",
			caps: DeviceCapabilities{MemoryGB: 16, CPUCores: 12, MaxTextureSize: 16384, PixelRatio: 3},
			want: TierUltra,
		},
		{
			name: "low-end laptop",
			caps: DeviceCapabilities{MemoryGB: 2, CPUCores: 2, MaxTextureSize: 2048, PixelRatio: 1},
			want: TierLow,
		},
		{
			name: "mid-range desktop",
			caps: DeviceCapabilities{MemoryGB: 8, CPUCores: 4, MaxTextureSize: 4096, PixelRatio: 1},
			want: TierHigh, // 3+2+2 = 7
		},
		{
			name: "all fallbacks",
			caps: Fallback(),
			want: TierHigh, // 2+2+2 = 6
		},
		{
			name: "one strong signal does not carry",
			caps: DeviceCapabilities{MemoryGB: 32, CPUCores: 2, MaxTextureSize: 2048, PixelRatio: 1},
			want: TierMedium, // 3+1+1 = 5
		},
		{
			name: "exact ultra boundary",
			caps: DeviceCapabilities{MemoryGB: 8, CPUCores: 8, MaxTextureSize: 4096, PixelRatio: 1},
			want: TierUltra, // 3+3+2 = 8
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.caps, th); got != tt.want {
				t.Errorf("Classify(%+v) = %s, want %s (score %d)", tt.caps, got, tt.want, Score(tt.caps, th))
			}
		})
	}
}

func TestScore_Range(t *testing.T) {
	th := DefaultThresholds()

	// Sweep a grid across and beyond every threshold; the summed score must
	// stay in [3,9] and classification must always land on a defined tier.
	memories := []float64{0, 0.5, 2, 4, 7.9, 8, 16, 128}
	cores := []int{0, 1, 2, 4, 6, 8, 32}
	textures := []int{0, 1024, 2048, 4096, 8192, 16384}

	for _, mem := range memories {
		for _, c := range cores {
			for _, tex := range textures {
				caps := DeviceCapabilities{MemoryGB: mem, CPUCores: c, MaxTextureSize: tex, PixelRatio: 1}

				score := Score(caps, th)
				if score < 3 || score > 9 {
					t.Fatalf("score out of range for %+v: %d", caps, score)
				}
				if tier := Classify(caps, th); !tier.Valid() {
					t.Fatalf("Classify(%+v) returned undefined tier %q", caps, tier)
				}
			}
		}
	}
}

func tierRank(tier Tier) int {
	for i, t := range Tiers() {
		if t == tier {
			return i
		}
	}
	return -1
}

func TestClassify_MonotonicPerSignal(t *testing.T) {
	th := DefaultThresholds()
	base := DeviceCapabilities{MemoryGB: 4, CPUCores: 4, MaxTextureSize: 4096, PixelRatio: 1}

	bump := []struct {
		name string
		mod  func(DeviceCapabilities, float64) DeviceCapabilities
	}{
		{"memory", func(c DeviceCapabilities, v float64) DeviceCapabilities { c.MemoryGB = v; return c }},
		{"cores", func(c DeviceCapabilities, v float64) DeviceCapabilities { c.CPUCores = int(v); return c }},
		{"texture", func(c DeviceCapabilities, v float64) DeviceCapabilities { c.MaxTextureSize = int(v); return c }},
	}

	values := []float64{1, 2, 4, 8, 16, 32, 4096, 8192, 16384}

	for _, b := range bump {
		t.Run(b.name, func(t *testing.T) {
			prevRank := -1
			for _, v := range values {
				tier := Classify(b.mod(base, v), th)
				rank := tierRank(tier)
				if rank < prevRank {
					t.Errorf("increasing %s to %v decreased tier to %s", b.name, v, tier)
				}
				prevRank = rank
			}
		})
	}
}

func TestNormalize_SubstitutesFallbacks(t *testing.T) {
	caps := DeviceCapabilities{}.Normalize()

	if caps.MemoryGB != FallbackMemoryGB {
		t.Errorf("expected fallback memory %v, got %v", FallbackMemoryGB, caps.MemoryGB)
	}
	if caps.CPUCores != FallbackCPUCores {
		t.Errorf("expected fallback cores %d, got %d", FallbackCPUCores, caps.CPUCores)
	}
	if caps.MaxTextureSize != FallbackMaxTextureSize {
		t.Errorf("expected fallback texture size %d, got %d", FallbackMaxTextureSize, caps.MaxTextureSize)
	}
	if caps.PixelRatio != FallbackPixelRatio {
		t.Errorf("expected fallback pixel ratio %v, got %v", FallbackPixelRatio, caps.PixelRatio)
	}
	if caps.TouchPoints != 0 {
		t.Errorf("touch points should stay zero, got %d", caps.TouchPoints)
	}

	// Partially populated values survive.
	partial := DeviceCapabilities{MemoryGB: 16, CPUCores: 2}.Normalize()
	if partial.MemoryGB != 16 || partial.CPUCores != 2 {
		t.Errorf("normalize clobbered real values: %+v", partial)
	}
}
