package fibonacci

import (
	"context"
	"math/bits"

	"github.com/agbru/fibnum/internal/progress"
)

// FastDoubling returns F(n) computed over T with O(log n) multiplications.
// F(0) is the zero value of T.
func FastDoubling[T Number[T]](n uint64) T {
	r, _ := FastDoublingContext[T](context.Background(), n, nil)
	return r
}

// FastDoublingContext is FastDoubling with cancellation and progress.
//
// Starting from k = 1 with F(k) = 1 and F(k-1) = 0, every bit of n below the
// most significant one doubles k using
//
//	F(2k+1) = 4F(k)² - F(k-1)² + 2(-1)^k
//	F(2k-1) = F(k)² + F(k-1)²
//	F(2k)   = F(2k+1) - F(2k-1)
//
// and then moves to 2k+1 when the bit is set. Each step costs two squarings.
//
// Parameters:
//   - ctx: Checked between doubling steps.
//   - n: The Fibonacci index.
//   - report: Receives normalized progress; may be nil.
//
// Returns:
//   - T: F(n), or the zero value on error.
//   - error: ctx.Err() if the context ended before completion.
func FastDoublingContext[T Number[T]](ctx context.Context, n uint64, report progress.ProgressCallback) (T, error) {
	var zero T
	if n == 0 {
		return zero, nil
	}
	two := zero.AddUint64(2)
	fk, fkm1 := zero.AddUint64(1), zero
	odd := true // parity of k

	steps := bits.Len64(n) - 1
	powers := progress.PrecomputePowers4(steps)
	total := progress.CalcTotalWork(steps)
	var last, done float64

	for step := 0; step < steps; step++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		fk2, fkm12 := fk.Mul(fk), fkm1.Mul(fkm1)

		f2kp1 := fk2.Lsh(2).Sub(fkm12)
		if odd {
			f2kp1 = f2kp1.Sub(two)
		} else {
			f2kp1 = f2kp1.Add(two)
		}
		f2km1 := fk2.Add(fkm12)
		f2k := f2kp1.Sub(f2km1)

		if n>>(steps-1-step)&1 == 1 {
			fk, fkm1, odd = f2kp1, f2k, true
		} else {
			fk, fkm1, odd = f2k, f2km1, false
		}
		done = progress.ReportStepProgress(report, &last, total, done, step, steps, powers)
	}
	if report != nil {
		report(1.0)
	}
	return fk, nil
}
