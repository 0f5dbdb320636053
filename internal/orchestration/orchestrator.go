package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/fibonacci"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so
// that a slow display rarely makes calculators drop updates.
const ProgressBufferMultiplier = 5

var tracer = otel.Tracer("orchestration")

// ExecuteCalculations runs the calculators concurrently and collects their
// results in input order. A failing calculator does not cancel the others.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - calculators: The calculators to execute.
//   - n: The Fibonacci index.
//   - opts: Calculation options shared by every calculator.
//   - progressReporter: Displays progress; use NullProgressReporter for quiet mode.
//   - out: The writer for progress output.
//
// Returns:
//   - []CalculationResult: One result per calculator.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := tracer.Start(ctx, "ExecuteCalculations")
	span.SetAttributes(
		attribute.Int64("n", int64(n)),
		attribute.Int("calculators", len(calculators)),
	)
	defer span.End()

	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, n, opts)
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// mismatchedNames lists the successful results that differ from want.
func mismatchedNames(results []CalculationResult, want CalculationResult) []string {
	var names []string
	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(want.Result) != 0 {
			names = append(names, res.Name)
		}
	}
	return names
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// prints the comparison table, checks that all successful results agree and
// presents the agreed value.
//
// Parameters:
//   - results: The results to analyze; sorted in place.
//   - opts: Presentation options.
//   - presenter: Renders the table and the result.
//   - errHandler: Maps the first error to an exit code when nothing succeeded.
//   - out: The writer for the report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the error handler's code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	_, span := tracer.Start(context.Background(), "AnalyzeComparisonResults")
	defer span.End()

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	presenter.PresentComparisonTable(results, out)

	if len(results) == 0 || results[0].Err != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		span.SetStatus(codes.Error, "no calculator succeeded")
		if len(results) == 0 {
			return apperrors.ExitErrorGeneric
		}
		span.RecordError(results[0].Err)
		return errHandler.HandleError(results[0].Err, 0, out)
	}

	if bad := mismatchedNames(results, results[0]); len(bad) > 0 {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Results of [%s] differ from %s.\n", strings.Join(bad, ", "), results[0].Name)
		span.SetStatus(codes.Error, "result mismatch")
		span.SetAttributes(attribute.StringSlice("mismatched", bad))
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(results[0], opts, out)
	return apperrors.ExitSuccess
}
