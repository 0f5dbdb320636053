// Package memory tunes the Go garbage collector around large calculations.
package memory

import (
	"fmt"
	"math"
	"runtime"
	"runtime/debug"

	"github.com/agbru/fibnum/internal/metrics"
	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during calculation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// AutoWorkingSetBytes is the estimated working set from which auto mode
// suspends the collector. F(n) crosses it around n = 2.4e7.
const AutoWorkingSetBytes uint64 = 10 << 20

// memoryLimitFactor bounds the heap while the collector is off, as a
// multiple of the memory obtained from the OS plus the estimated working set.
const memoryLimitFactor = 3

// ParseGCMode validates a mode name.
func ParseGCMode(s string) (GCMode, error) {
	switch m := GCMode(s); m {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return m, nil
	}
	return "", fmt.Errorf("invalid GC mode %q (want auto, aggressive or disabled)", s)
}

// GCController suspends the garbage collector during a calculation and
// restores it afterward. The multi-limb arithmetic allocates a fresh slice
// per operation, so collections during a long run are mostly wasted work.
type GCController struct {
	mode       GCMode
	active     bool
	workingSet uint64
	oldPercent int
	logger     zerolog.Logger
	collector  *metrics.MemoryCollector
	start      metrics.MemorySnapshot
	end        metrics.MemorySnapshot
}

// NewGCController creates a controller for computing F(n) in the given mode.
func NewGCController(mode GCMode, n uint64) *GCController {
	gc := &GCController{
		mode:       mode,
		workingSet: metrics.EstimateWorkingSet(n),
		logger:     zerolog.Nop(),
		collector:  metrics.NewMemoryCollector(),
	}
	switch mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = gc.workingSet >= AutoWorkingSetBytes
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool {
	return gc.active
}

// Begin disables the collector if the controller is active. A soft memory
// limit stays in place so the runtime still collects before running out of
// memory.
func (gc *GCController) Begin() {
	gc.start = gc.collector.Snapshot()
	if !gc.active {
		return
	}
	gc.oldPercent = debug.SetGCPercent(-1)
	limit := memoryLimitFactor * (gc.start.Sys + gc.workingSet)
	if limit > 0 && limit < math.MaxInt64 {
		debug.SetMemoryLimit(int64(limit))
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Uint64("estimated_working_set_bytes", gc.workingSet).
		Msg("gc disabled")
}

// End restores the collector settings and triggers a collection.
func (gc *GCController) End() {
	gc.end = gc.collector.Snapshot()
	if !gc.active {
		return
	}
	debug.SetGCPercent(gc.oldPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	delta := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", delta.HeapAlloc).
		Uint64("total_alloc_bytes", delta.TotalAlloc).
		Uint32("gc_cycles", delta.NumGC).
		Msg("gc re-enabled")
}

// Stats returns the memory counters accumulated between Begin and End.
func (gc *GCController) Stats() metrics.MemorySnapshot {
	return gc.end.Sub(gc.start)
}
