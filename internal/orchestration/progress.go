package orchestration

import (
	"time"

	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/progress"
)

// ProgressAggregator folds the progress updates of several calculators into
// an average with an ETA. The CLI spinner and the TUI both use it.
type ProgressAggregator struct {
	state  *format.ProgressWithETA
	values []float64
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	// CalculatorIndex is the index of the calculator that sent the update.
	CalculatorIndex int
	// Value is the raw progress of that calculator.
	Value float64
	// AverageProgress is the mean over all calculators.
	AverageProgress float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// NewProgressAggregator returns nil if numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:  format.NewProgressWithETA(numCalculators),
		values: make([]float64, numCalculators),
	}
}

// Update records one progress update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if i := update.CalculatorIndex; i >= 0 && i < len(a.values) {
		a.values[i] = min(max(update.Value, 0), 1)
	}
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current mean without updating, for periodic
// refreshes between updates.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Values returns a copy of the per-calculator progress.
func (a *ProgressAggregator) Values() []float64 {
	return append([]float64(nil), a.values...)
}

// NumCalculators returns the number of calculators being tracked.
func (a *ProgressAggregator) NumCalculators() int {
	return len(a.values)
}

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return len(a.values) > 1
}

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
