// Package env implements best-effort hardware capability probing for Linux.
package env

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/dollycam/dolly/internal/application/port"
	"github.com/dollycam/dolly/internal/logging"
	"github.com/dollycam/dolly/internal/quality"
)

const (
	// kibibyte is 1024 bytes (/proc/meminfo reports in kB which is actually KiB)
	kibibyte = 1024
	gibibyte = 1024 * 1024 * 1024
)

// Surveyor implements port.HardwareSurveyor for Linux systems.
// Safe for concurrent use after creation. Every probe is wrapped so an
// inaccessible or unsupported source yields the documented fallback value
// from the quality package; probing never returns an error.
type Surveyor struct {
	mu     sync.Mutex
	once   *sync.Once
	cached quality.DeviceCapabilities
}

// NewSurveyor creates a new hardware surveyor.
func NewSurveyor() *Surveyor {
	return &Surveyor{once: new(sync.Once)}
}

// Survey detects and returns device capabilities.
// Results are cached after the first call.
func (s *Surveyor) Survey(ctx context.Context) quality.DeviceCapabilities {
	s.mu.Lock()
	once := s.once
	s.mu.Unlock()

	once.Do(func() {
		caps := s.doSurvey(ctx)
		s.mu.Lock()
		s.cached = caps
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}

// Resurvey discards the cached result and probes again. Used on viewport
// resize and orientation change; the caller publishes the fresh value as a
// new immutable snapshot.
func (s *Surveyor) Resurvey(ctx context.Context) quality.DeviceCapabilities {
	s.mu.Lock()
	s.once = new(sync.Once)
	s.mu.Unlock()
	return s.Survey(ctx)
}

func (s *Surveyor) doSurvey(ctx context.Context) quality.DeviceCapabilities {
	log := logging.FromContext(ctx)

	caps := quality.DeviceCapabilities{
		MemoryGB:       s.detectMemoryGB(ctx),
		CPUCores:       s.detectCPUCores(ctx),
		MaxTextureSize: s.detectMaxTextureSize(ctx),
		TouchPoints:    s.detectTouchPoints(ctx),
		PixelRatio:     s.detectPixelRatio(),
	}
	caps.ViewportWidth, caps.ViewportHeight = s.detectViewport()
	caps = caps.Normalize()

	log.Debug().
		Float64("memory_gb", caps.MemoryGB).
		Int("cpu_cores", caps.CPUCores).
		Int("max_texture_size", caps.MaxTextureSize).
		Int("touch_points", caps.TouchPoints).
		Float64("pixel_ratio", caps.PixelRatio).
		Int("viewport_width", caps.ViewportWidth).
		Int("viewport_height", caps.ViewportHeight).
		Msg("capability survey completed")

	return caps
}

// detectMemoryGB reads total memory from /proc/meminfo.
// Returns 0 (normalized to the fallback) when unreadable.
func (*Surveyor) detectMemoryGB(ctx context.Context) float64 {
	log := logging.FromContext(ctx)

	file, err := os.Open("/proc/meminfo")
	if err != nil {
		log.Debug().Err(err).Msg("cannot read /proc/meminfo")
		return 0
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return 0
		}
		kb, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return 0
		}
		return float64(kb*kibibyte) / gibibyte
	}
	return 0
}

// detectCPUCores returns the number of physical CPU cores, counting unique
// core_ids in sysfs, then /proc/cpuinfo, then logical threads.
func (s *Surveyor) detectCPUCores(ctx context.Context) int {
	log := logging.FromContext(ctx)

	coreIDs := make(map[string]struct{})
	cpuPath := "/sys/devices/system/cpu"

	entries, err := os.ReadDir(cpuPath)
	if err != nil {
		log.Debug().Err(err).Msg("cannot read /sys/devices/system/cpu")
		return s.detectCPUCoresFromProcCPUInfo(ctx)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "cpu") {
			continue
		}
		// Skip non-numeric cpu entries (like cpufreq, cpuidle)
		cpuNum := strings.TrimPrefix(entry.Name(), "cpu")
		if _, err := strconv.Atoi(cpuNum); err != nil {
			continue
		}

		coreIDPath := filepath.Join(cpuPath, entry.Name(), "topology", "core_id")
		data, err := os.ReadFile(coreIDPath)
		if err != nil {
			continue
		}
		coreIDs[strings.TrimSpace(string(data))] = struct{}{}
	}

	if len(coreIDs) > 0 {
		return len(coreIDs)
	}
	return s.detectCPUCoresFromProcCPUInfo(ctx)
}

// detectCPUCoresFromProcCPUInfo parses /proc/cpuinfo, falling back to the
// logical thread count when the "cpu cores" field is absent.
func (*Surveyor) detectCPUCoresFromProcCPUInfo(ctx context.Context) int {
	log := logging.FromContext(ctx)

	file, err := os.Open("/proc/cpuinfo")
	if err != nil {
		log.Debug().Err(err).Msg("cannot read /proc/cpuinfo")
		return runtime.NumCPU()
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "cpu cores") {
			parts := strings.Split(line, ":")
			if len(parts) == 2 {
				cores, err := strconv.Atoi(strings.TrimSpace(parts[1]))
				if err == nil && cores > 0 {
					return cores
				}
			}
		}
	}
	return runtime.NumCPU()
}

// detectMaxTextureSize estimates the GPU's maximum texture dimension from
// DRM VRAM without creating a GL context. The VRAM-to-texture-size mapping
// is a heuristic: any dedicated GPU of the last decade supports 8192, and
// 4 GiB or more of VRAM reliably indicates 16384 support.
func (s *Surveyor) detectMaxTextureSize(ctx context.Context) int {
	vram := s.detectVRAM(ctx)
	switch {
	case vram >= 4*gibibyte:
		return 16384
	case vram >= 1*gibibyte:
		return 8192
	case vram > 0:
		return 4096
	default:
		return 0
	}
}

// detectVRAM reads VRAM size from the DRM subsystem. When multiple GPUs are
// present (iGPU + discrete), the largest wins.
func (s *Surveyor) detectVRAM(ctx context.Context) uint64 {
	log := logging.FromContext(ctx)

	const drmBase = "/sys/class/drm"
	var best uint64

	for _, card := range []string{"card0", "card1", "card2", "card3"} {
		cardPath := filepath.Join(drmBase, card)
		if _, err := os.Stat(cardPath); os.IsNotExist(err) {
			continue
		}

		vram := s.detectCardVRAM(ctx, cardPath)
		if vram > best {
			best = vram
		}
	}

	if best > 0 {
		log.Debug().Uint64("vram_mb", best/(1024*1024)).Msg("detected VRAM")
	}
	return best
}

func (s *Surveyor) detectCardVRAM(ctx context.Context, cardPath string) uint64 {
	// Method 1: AMD exposes mem_info_vram_total in the device directory.
	amdVRAMPath := filepath.Join(cardPath, "device", "mem_info_vram_total")
	if data, err := os.ReadFile(amdVRAMPath); err == nil {
		vram, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
		if err == nil && vram > 0 {
			return vram
		}
	}

	// Method 2: PCI BAR sizes from the resource file. The first memory
	// region above 256MB is usually VRAM; Intel iGPUs share system RAM
	// and report nothing here, which is the intended outcome.
	return s.detectVRAMFromPCIResource(ctx, cardPath)
}

func (*Surveyor) detectVRAMFromPCIResource(_ context.Context, cardPath string) uint64 {
	resourcePath := filepath.Join(cardPath, "device", "resource")
	file, err := os.Open(resourcePath)
	if err != nil {
		return 0
	}
	defer func() { _ = file.Close() }()

	const minVRAMSize = 256 * 1024 * 1024
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		start, err1 := strconv.ParseUint(strings.TrimPrefix(parts[0], "0x"), 16, 64)
		end, err2 := strconv.ParseUint(strings.TrimPrefix(parts[1], "0x"), 16, 64)
		if err1 == nil && err2 == nil && start > 0 && end > start {
			if size := end - start + 1; size > minVRAMSize {
				return size
			}
		}
	}
	return 0
}

// detectTouchPoints counts touch-capable input devices. A coarse probe:
// devices advertising ABS_MT_SLOT in their capability bits are multitouch;
// the name heuristic catches the rest.
func (*Surveyor) detectTouchPoints(ctx context.Context) int {
	log := logging.FromContext(ctx)

	file, err := os.Open("/proc/bus/input/devices")
	if err != nil {
		log.Debug().Err(err).Msg("cannot read /proc/bus/input/devices")
		return 0
	}
	defer func() { _ = file.Close() }()

	touch := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "N: Name=") {
			continue
		}
		name := strings.ToLower(line)
		if strings.Contains(name, "touchscreen") || strings.Contains(name, "touch screen") {
			touch++
		}
	}

	if touch > 0 {
		// Report a conventional multitouch point count rather than the
		// device count; hosts only branch on zero vs non-zero.
		return 5
	}
	return 0
}

// detectPixelRatio reads the desktop scale factor from the environment.
func (*Surveyor) detectPixelRatio() float64 {
	for _, key := range []string{"GDK_SCALE", "QT_SCALE_FACTOR"} {
		if v := os.Getenv(key); v != "" {
			if ratio, err := strconv.ParseFloat(v, 64); err == nil && ratio > 0 {
				return ratio
			}
		}
	}
	return 0
}

// detectViewport reads the host viewport from DOLLY_VIEWPORT ("WxH").
// Headless runs fall back to a standard desktop viewport.
func (*Surveyor) detectViewport() (width, height int) {
	v := os.Getenv("DOLLY_VIEWPORT")
	if v == "" {
		return 0, 0
	}
	parts := strings.SplitN(strings.ToLower(v), "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0
	}
	return w, h
}

var _ port.HardwareSurveyor = (*Surveyor)(nil)
