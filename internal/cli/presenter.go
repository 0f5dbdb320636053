package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/metrics"
	"github.com/agbru/fibnum/internal/orchestration"
	"github.com/agbru/fibnum/internal/progress"
	"github.com/agbru/fibnum/internal/ui"
)

// CLIProgressReporter shows the spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter writes colorized results to the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per calculator. Padding is computed
// on the plain text so that color codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	if len(results) == 0 {
		return
	}
	durations := make([]string, len(results))
	nameW, durW := len("Algorithm"), len("Duration")
	for i, res := range results {
		durations[i] = format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			durations[i] = "< 1µs"
		}
		nameW = max(nameW, len(res.Name))
		durW = max(durW, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameW-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())
	for i, res := range results {
		status := fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameW-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), pad(durW-len([]rune(durations[i]))),
			status)
	}
}

func pad(n int) string {
	return strings.Repeat(" ", max(n, 0))
}

// PresentResult prints the agreed result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, result.Duration, opts, out)
}

// HandleError prints the failure status with the active theme's colors.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ColorProvider{})
}

// DisplayMemoryStats prints the memory growth of a run.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\n%sMemory:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Live heap:       %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	if delta.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
