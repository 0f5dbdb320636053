// Package sysmon samples machine-wide CPU and memory load for the dashboard,
// next to the process-level numbers of the runtime.
package sysmon

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one machine-wide sample.
type Stats struct {
	CPUPercent float64 // 0 to 100, across all cores
	MemPercent float64 // 0 to 100
	MemUsed    uint64  // bytes
	MemTotal   uint64  // bytes
}

// Sampler reads system counters. The zero value is not usable; call
// NewSampler.
type Sampler struct {
	cpuPercent    func(interval time.Duration, perCPU bool) ([]float64, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

// NewSampler returns a sampler backed by gopsutil.
func NewSampler() *Sampler {
	return &Sampler{cpuPercent: cpu.Percent, virtualMemory: mem.VirtualMemory}
}

// Sample returns the load since the previous call. CPU uses a zero interval,
// so the first sample of a process may read 0. Fields that cannot be read
// stay zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	if pcts, err := s.cpuPercent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := s.virtualMemory(); err == nil && vm != nil {
		st.MemPercent = clampPercent(vm.UsedPercent)
		st.MemUsed = vm.Used
		st.MemTotal = vm.Total
	}
	return st
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}
