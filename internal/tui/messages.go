package tui

import (
	"time"

	"github.com/agbru/fibnum/internal/metrics"
	"github.com/agbru/fibnum/internal/orchestration"
	"github.com/agbru/fibnum/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries every calculator's outcome.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the agreed result.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
	Opts   orchestration.PresentationOptions
}

// ErrorMsg reports that no calculator succeeded.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic refreshes.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample and the machine-wide load.
type MemStatsMsg struct {
	metrics.MemorySnapshot
	NumGoroutine int
	System       sysmon.Stats
}

// CalculationCompleteMsg ends a run. Generation identifies the run so that
// messages of a canceled run are ignored after a restart.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
