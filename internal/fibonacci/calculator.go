package fibonacci

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/metrics"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Calculator is the interface the orchestration layer drives. Calculators are
// safe for concurrent use.
type Calculator interface {
	// Calculate computes F(n), sending progress updates to progressChan when
	// it is not nil.
	//
	// Parameters:
	//   - ctx: The context for cancellation and deadlines.
	//   - progressChan: The channel receiving progress updates; may be nil.
	//   - calcIndex: The index of this calculator in the current run.
	//   - n: The Fibonacci index.
	//   - opts: Calculation options.
	//
	// Returns:
	//   - *big.Int: F(n).
	//   - error: An error if the calculation failed or was canceled.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// coreCalculator is a bare algorithm without the cross-cutting concerns.
type coreCalculator interface {
	CalculateCore(ctx context.Context, report ProgressCallback, n uint64) (*big.Int, error)
	Name() string
}

// FibCalculator decorates a coreCalculator with progress fan-out, tracing,
// metrics and logging.
type FibCalculator struct {
	core     coreCalculator
	recorder *metrics.Recorder
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: the `coreCalculator` implementation cannot be nil")
	}
	return &FibCalculator{core: core, recorder: metrics.Default}
}

// Name returns the name of the wrapped algorithm.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator by registering a channel observer and
// delegating to CalculateWithObservers.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

// CalculateWithObservers runs the calculation, notifying every observer of
// subject. A nil subject discards progress.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - subject: The observers to notify; may be nil.
//   - calcIndex: The index of this calculator in the current run.
//   - n: The Fibonacci index.
//   - opts: Calculation options.
//
// Returns:
//   - *big.Int: F(n).
//   - error: An error if the calculation failed or was canceled.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64, opts Options) (result *big.Int, err error) {
	ctx, span := otel.Tracer("fibonacci").Start(ctx, "Calculate")
	span.SetAttributes(
		attribute.String("algorithm", c.core.Name()),
		attribute.Int64("n", int64(n)),
	)
	defer span.End()

	applyOptions(opts)

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.recorder.ObserveCalculation(c.core.Name(), elapsed, err)
		if err == nil {
			c.recorder.SetResultBits(c.core.Name(), result.BitLen())
		}
		log.Debug().
			Str("algo", c.core.Name()).
			Uint64("n", n).
			Dur("duration", elapsed).
			Err(err).
			Msg("calculation completed")
	}()

	report := func(float64) {}
	if subject != nil {
		report = subject.Freeze(calcIndex)
	}

	result, err = c.core.CalculateCore(ctx, report, n)
	if err != nil {
		if !apperrors.IsContextError(err) {
			err = apperrors.CalculationError{Cause: err}
		}
		return nil, err
	}
	report(1.0)
	return result, nil
}
