package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibnum/internal/progress"
)

// CalculationResult is the outcome of one calculator run. It is shared by the
// orchestration and presentation layers.
type CalculationResult struct {
	// Name is the display name of the calculator.
	Name string
	// Result is F(n). It is nil if an error occurred.
	Result *big.Int
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error of the run, if any.
	Err error
}

// PresentationOptions configures how the final result is shown.
type PresentationOptions struct {
	N        uint64
	Verbose  bool
	Details  bool
	Hex      bool
	LimbBits int
}

// ProgressReporter displays calculation progress. It keeps the orchestration
// layer independent of the spinner and the TUI.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel silently. Quiet mode and
// tests use it.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-calculator summary.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the agreed result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps a calculation error to an exit code, printing a status.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
