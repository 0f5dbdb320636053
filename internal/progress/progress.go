// Package progress carries calculation progress from the Fibonacci
// algorithms to the user interfaces, loggers and metrics.
package progress

// ProgressReportThreshold is the minimum progress delta (1%) between two
// reports of the same calculation.
const ProgressReportThreshold = 0.01

// ProgressUpdate is the message sent over a channel from a running
// calculator to the UI.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator among those running
	// concurrently.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback is the callback the algorithms report through. It is
// decoupled from channels so that the numeric code does not depend on the
// UI wiring.
type ProgressCallback func(progress float64)

// CalcTotalWork returns the work units of a doubling loop over numBits bits.
// Operand sizes double at each bit, so with quadratic-ish multiplication the
// work of step i grows as 4^i and the total is the geometric sum
// (4^numBits - 1) / 3.
//
// Parameters:
//   - numBits: The number of loop iterations (bits of n).
//
// Returns:
//   - float64: The estimated total work units.
func CalcTotalWork(numBits int) float64 {
	if numBits <= 0 {
		return 0
	}
	total := 0.0
	for _, p := range PrecomputePowers4(numBits) {
		total += p
	}
	return total
}

var powersOf4 [64]float64

func init() {
	powersOf4[0] = 1
	for i := 1; i < len(powersOf4); i++ {
		powersOf4[i] = powersOf4[i-1] * 4
	}
}

// PrecomputePowers4 returns 4^0 .. 4^(numBits-1). For numBits <= 64 the
// result is a slice of a shared table and must not be modified.
func PrecomputePowers4(numBits int) []float64 {
	if numBits <= 0 {
		return nil
	}
	if numBits <= len(powersOf4) {
		return powersOf4[:numBits]
	}
	powers := make([]float64, numBits)
	copy(powers, powersOf4[:])
	for i := len(powersOf4); i < numBits; i++ {
		powers[i] = powers[i-1] * 4
	}
	return powers
}

// ReportStepProgress accounts for one loop step and calls report when
// progress moved by at least ProgressReportThreshold, or at the first and
// last step.
//
// Parameters:
//   - report: The callback to notify. May be nil.
//   - lastReported: The last value passed to report; updated in place.
//   - totalWork: The value of CalcTotalWork for the loop.
//   - workDone: The work accumulated before this step.
//   - step: The zero-based index of this step.
//   - steps: The number of steps in the loop.
//   - powers: The table from PrecomputePowers4(steps).
//
// Returns:
//   - float64: The work accumulated including this step.
func ReportStepProgress(report ProgressCallback, lastReported *float64, totalWork, workDone float64, step, steps int, powers []float64) float64 {
	done := workDone + powers[step]
	if report == nil || totalWork <= 0 {
		return done
	}
	current := done / totalWork
	if current-*lastReported >= ProgressReportThreshold || step == 0 || step == steps-1 {
		report(current)
		*lastReported = current
	}
	return done
}
