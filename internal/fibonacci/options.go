package fibonacci

import "github.com/agbru/fibnum/internal/bignum"

// Options configures a calculation.
type Options struct {
	// KaratsubaThreshold is the operand size, in limbs, from which the
	// multi-limb multiplication switches to Karatsuba. Zero keeps the
	// process-wide setting. The threshold is process-wide, so concurrent
	// calculations must agree on it.
	KaratsubaThreshold int
}

// applyOptions pushes opts into the process-wide bignum settings.
func applyOptions(opts Options) {
	if opts.KaratsubaThreshold > 0 && opts.KaratsubaThreshold != bignum.KaratsubaThreshold() {
		bignum.SetKaratsubaThreshold(opts.KaratsubaThreshold)
	}
}
