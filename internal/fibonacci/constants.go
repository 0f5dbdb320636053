package fibonacci

const (
	// MaxFibUint64 is the largest index whose Fibonacci number fits in a
	// uint64: F(93) < 2^64 <= F(94).
	MaxFibUint64 = 93

	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// F(n) has about n*FibonacciGrowthFactor bits.
	FibonacciGrowthFactor = 0.69424

	// CalibrationN is the Fibonacci index timed by the quick benchmark that
	// follows a calibration run.
	CalibrationN = 200_000
)
