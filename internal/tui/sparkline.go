package tui

import "slices"

var sparklineChars = []rune("▁▂▃▄▅▆▇█")

// History keeps the most recent samples up to a fixed capacity.
type History struct {
	samples []float64
	limit   int
}

// NewHistory returns an empty history holding at most limit samples.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Push appends v, dropping the oldest sample when full.
func (h *History) Push(v float64) {
	if len(h.samples) == h.limit {
		h.samples = append(h.samples[:0], h.samples[1:]...)
	}
	h.samples = append(h.samples, v)
}

// Samples returns the samples oldest first.
func (h *History) Samples() []float64 { return slices.Clone(h.samples) }

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Reset drops all samples.
func (h *History) Reset() { h.samples = h.samples[:0] }

// RenderSparkline draws values scaled to their own maximum, so the tallest
// sample always reaches the top block. Negative values render as the lowest
// block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	peak := slices.Max(values)
	top := len(sparklineChars) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = min(int(v/peak*float64(top)+0.5), top)
		}
		out[i] = sparklineChars[idx]
	}
	return string(out)
}
