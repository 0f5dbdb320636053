package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agbru/fibnum/internal/cli"
	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/memory"
	"github.com/agbru/fibnum/internal/metrics"
	"github.com/agbru/fibnum/internal/orchestration"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun, err := orchestration.GetCalculatorsToRun(a.Config, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	runID := uuid.Must(uuid.NewV7()).String()
	log.Debug().Str("run_id", runID).Uint64("n", a.Config.N).Int("calculators", len(calculatorsToRun)).
		Int("karatsuba_threshold", a.Config.KaratsubaThreshold).Msg("starting run")

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	gc := a.newGCController()
	gc.Begin()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, a.Config.ToCalculationOptions(), progressReporter, progressOut)
	gc.End()
	for i := range results {
		if errors.Is(results[i].Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.TimeoutError{Operation: results[i].Name, Limit: a.Config.Timeout}
		}
	}

	exitCode := a.analyzeResults(results, out)

	if exitCode == apperrors.ExitSuccess {
		if code := a.saveBestResult(results, runID, out); code != apperrors.ExitSuccess {
			exitCode = code
		}
	}
	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(gc.Stats(), out)
	}
	if a.Config.MetricsFile != "" {
		if err := metrics.Default.WriteTextfile(a.Config.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", a.Config.MetricsFile).Msg("writing metrics")
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	return exitCode
}

func (a *Application) newGCController() *memory.GCController {
	mode, err := memory.ParseGCMode(a.Config.GCControl)
	if err != nil {
		mode = memory.GCModeAuto
	}
	gc := memory.NewGCController(mode, a.Config.N)
	gc.SetLogger(log.Logger)
	return gc
}

func (a *Application) presentationOptions() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		N:        a.Config.N,
		Verbose:  a.Config.Verbose,
		Details:  a.Config.Details,
		Hex:      a.Config.HexOutput,
		LimbBits: a.Config.LimbBits,
	}
}

// analyzeResults compares and presents the results. Quiet mode prints only
// the value and reports a mismatch on the error writer.
func (a *Application) analyzeResults(results []orchestration.CalculationResult, out io.Writer) int {
	opts := a.presentationOptions()
	if !a.Config.Quiet {
		presenter := cli.CLIResultPresenter{}
		return orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)
	}

	presenter := cli.QuietPresenter{Out: out}
	code := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)
	switch code {
	case apperrors.ExitSuccess:
	case apperrors.ExitErrorMismatch:
		fmt.Fprintln(a.ErrWriter, "Error: calculators returned different results")
	default:
		if err := firstError(results); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
	}
	return code
}

func (a *Application) saveBestResult(results []orchestration.CalculationResult, runID string, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	best := findBestResult(results)
	if best == nil {
		return apperrors.ExitSuccess
	}
	cfg := cli.OutputConfig{
		OutputFile:   a.Config.OutputFile,
		Quiet:        a.Config.Quiet,
		RunID:        runID,
		Presentation: a.presentationOptions(),
	}
	if err := cli.WriteResultToFile(best.Result, best.Duration, best.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		cli.DisplaySaved(out, a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil && results[i].Result != nil {
			if best == nil || results[i].Duration < best.Duration {
				best = &results[i]
			}
		}
	}
	return best
}

func firstError(results []orchestration.CalculationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
