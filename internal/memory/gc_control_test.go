package memory

import (
	"runtime/debug"
	"testing"
)

func TestParseGCMode(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"auto", "aggressive", "disabled"} {
		if m, err := ParseGCMode(s); err != nil || string(m) != s {
			t.Errorf("ParseGCMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseGCMode("off"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewGCControllerActivation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode GCMode
		n    uint64
		want bool
	}{
		{GCModeDisabled, 1 << 40, false},
		{GCModeAggressive, 10, true},
		{GCModeAuto, 1000, false},
		{GCModeAuto, 100_000_000, true},
	}
	for _, tt := range tests {
		if got := NewGCController(tt.mode, tt.n).Active(); got != tt.want {
			t.Errorf("NewGCController(%s, %d).Active() = %v, want %v", tt.mode, tt.n, got, tt.want)
		}
	}
}

var sink [][]byte

// Not parallel: changes the process-wide GC percent.
func TestGCControllerRestoresSettings(t *testing.T) {
	before := debug.SetGCPercent(100)
	defer debug.SetGCPercent(before)

	gc := NewGCController(GCModeAggressive, 1000)
	gc.Begin()
	if got := debug.SetGCPercent(-1); got != -1 {
		t.Errorf("GC percent during calculation = %d, want -1", got)
	}
	for range 64 {
		sink = append(sink, make([]byte, 1024))
	}
	sink = nil
	gc.End()

	if got := debug.SetGCPercent(100); got != 100 {
		t.Errorf("GC percent after End = %d, want 100", got)
	}
	if gc.Stats().TotalAlloc == 0 {
		t.Error("Stats should report allocations between Begin and End")
	}
}
