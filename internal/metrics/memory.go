package metrics

import (
	"math"
	"runtime"
)

// fibonacciBitsPerIndex is log2(phi): F(n) has about n*0.69424 bits.
const fibonacciBitsPerIndex = 0.69424

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// Sub returns the growth of the cumulative counters from before to s.
// HeapAlloc and Sys keep the value of s.
func (s MemorySnapshot) Sub(before MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    s.HeapAlloc,
		TotalAlloc:   s.TotalAlloc - before.TotalAlloc,
		Sys:          s.Sys,
		NumGC:        s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// EstimateResultBits returns the approximate bit length of F(n).
func EstimateResultBits(n uint64) uint64 {
	return uint64(math.Ceil(float64(n) * fibonacciBitsPerIndex))
}

// EstimateResultLimbs returns the approximate number of limbs of the given
// width needed to hold F(n).
func EstimateResultLimbs(n uint64, limbBits int) uint64 {
	if limbBits <= 0 {
		return 0
	}
	b := uint64(limbBits)
	return (EstimateResultBits(n) + b - 1) / b
}

// EstimateWorkingSet approximates the peak heap of one fast-doubling run:
// about five live values of the final size.
func EstimateWorkingSet(n uint64) uint64 {
	return 5 * (EstimateResultBits(n)/8 + 1)
}
