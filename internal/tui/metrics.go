package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fibnum/internal/format"
)

// heapSamples is the sparkline length of the heap panel.
const heapSamples = 40

// MetricsModel displays runtime memory statistics and the heap history.
type MetricsModel struct {
	last         MemStatsMsg
	heap         *History
	speed        float64 // progress per second, smoothed
	lastProgress float64
	lastUpdate   time.Time
	width        int
}

// NewMetricsModel returns an empty panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{heap: NewHistory(heapSamples), lastUpdate: time.Now()}
}

// SetWidth sets the render width.
func (m *MetricsModel) SetWidth(w int) { m.width = w }

// UpdateMemStats records a memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.last = msg
	m.heap.Push(float64(msg.HeapAlloc))
}

// UpdateProgress folds the average progress into the speed estimate.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt < 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// View renders the panel.
func (m MetricsModel) View() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Heap", format.FormatBytes(m.last.HeapAlloc))
	row("Sys", format.FormatBytes(m.last.Sys))
	row("GC", fmt.Sprintf("%d cycles, %.1fms paused", m.last.NumGC, float64(m.last.PauseTotalNs)/1e6))
	row("Goroutines", fmt.Sprint(m.last.NumGoroutine))
	if sys := m.last.System; sys.MemTotal > 0 {
		row("System", fmt.Sprintf("CPU %.0f%%, RAM %.0f%% of %s", sys.CPUPercent, sys.MemPercent, format.FormatBytes(sys.MemTotal)))
	}
	if m.speed > 0 {
		row("Speed", fmt.Sprintf("%.1f%%/s", m.speed*100))
	}
	b.WriteString(sparklineStyle.Render(RenderSparkline(m.heap.Samples())))

	return panelStyle.Width(max(m.width-2, 0)).Render(b.String())
}
